// Package normalize holds the static lookup data used for indexing and
// aggregation: name-variant canonicalization, keyword category rules,
// composer attribution, color assignments, and the fixed structural tables
// of the archive (Tektonik groups, matrix periods, life phases).
package normalize

// personCanonical maps lowercased name variants observed in the export to
// their canonical form. The corpus is hand-curated; most entries fix typos
// or spelling variants of the same individual.
var personCanonical = map[string]string{
	"hartmann, prof.":        "Hartmann, Rudolf",
	"hartmann, rudolf":       "Hartmann, Rudolf",
	"taubman, martin hugo":   "Taubmann, Martin Hugo",
	"taubmann, martin hugo":  "Taubmann, Martin Hugo",
	"taubmann, frau":         "Taubmann, Martin Hugo",
	"dermota":                "Dermota, Anton",
	"dermotas, anton":        "Dermota, Anton",
	"dermota, anton":         "Dermota, Anton",
	"dönch, carl":            "Dönch, Karl",
	"dönch, karl":            "Dönch, Karl",
	"gostic, josef":          "Gostič, Josef",
	"gostič, josef":          "Gostič, Josef",
	"guthrie, frederic":      "Guthrie, Frederick",
	"guthrie, frederick":     "Guthrie, Frederick",
	"krauß, clemens":         "Krauss, Clemens",
	"krauss, clemens":        "Krauss, Clemens",
	"kupper, annelies":       "Kupper, Anneliese",
	"kupper, anneliese":      "Kupper, Anneliese",
	"maykut, erich":          "Majkut, Erich",
	"majkut, erich":          "Majkut, Erich",
	"metternicz, josef":      "Metternich, Josef",
	"metternich, josef":      "Metternich, Josef",
	"schmidt-gasse, helmut":  "Schmidt-Garre, Helmut",
	"schmidt-garre, helmut":  "Schmidt-Garre, Helmut",
	"verdi, guiseppe":        "Verdi, Giuseppe",
	"kusche, benno":          "Kusche, Benno",
	"kurt, kuhlmann":         "Kuhlmann, Kurt",
	"felberma-yers, anny":    "Felbermayer, Anny",
	"wagner, siegfied":       "Wagner, Siegfried",
	"wehrli., dr.":           "Wehrli, Dr.",
	"levinger. dr. henry w.": "Levinger, Dr. Henry W.",
}

// CategoryRule assigns a category to any person whose lowercased name
// contains the keyword.
type CategoryRule struct {
	Keyword  string
	Category string
}

// categoryRules in declaration order; ranking happens in Rules(), which
// sorts by keyword length descending so that specific names ("wieland
// wagner" → Regisseur) win over generic ones ("wagner" → Komponist).
var categoryRules = []CategoryRule{
	{"beethoven", "Komponist"}, {"verdi", "Komponist"}, {"mozart", "Komponist"},
	{"brahms", "Komponist"}, {"schubert", "Komponist"}, {"wolf, hugo", "Komponist"},
	{"mahler", "Komponist"}, {"bizet", "Komponist"}, {"tschaikowsky", "Komponist"},
	{"barwinsky", "Komponist"}, {"puccini", "Komponist"},
	{"karajan", "Dirigent"}, {"böhm", "Dirigent"}, {"knappertsbusch", "Dirigent"},
	{"furtwängler", "Dirigent"}, {"krauss", "Dirigent"}, {"krauß", "Dirigent"},
	{"solti", "Dirigent"}, {"kempe", "Dirigent"}, {"kolessa", "Dirigent"},
	{"hindemith", "Dirigent"},
	{"wieland wagner", "Regisseur"}, {"wolfgang wagner", "Regisseur"},
	{"wagner, siegfried", "Regisseur"},
	{"felsenstein", "Regisseur"}, {"hartmann", "Regisseur"},
	{"wagner", "Komponist"}, {"strauss", "Komponist"},
	{"gluck", "Komponist"}, {"händel", "Komponist"},
	{"werba", "Korrepetitor"}, {"baumgartner", "Korrepetitor"},
	{"taubman", "Vermittler"}, {"taubmann", "Vermittler"},
	{"ludwig", "Kollege"}, {"jurinac", "Kollege"}, {"della casa", "Kollege"},
	{"nilsson", "Kollege"}, {"vickers", "Kollege"}, {"windgassen", "Kollege"},
	{"hotter", "Kollege"}, {"rehfuss", "Kollege"}, {"callas", "Kollege"},
}

// composerCanonical maps lowercased composer variants to canonical names.
var composerCanonical = map[string]string{
	"wagner, richard": "Wagner", "wagner": "Wagner", "richard wagner": "Wagner",
	"verdi, giuseppe": "Verdi", "verdi": "Verdi", "giuseppe verdi": "Verdi",
	"strauss, richard": "Strauss", "strauss": "Strauss", "richard strauss": "Strauss",
	"beethoven, ludwig van": "Beethoven", "beethoven, ludwig von": "Beethoven",
	"beethoven": "Beethoven", "ludwig van beethoven": "Beethoven",
	"gluck, christoph willibald": "Gluck/Händel", "gluck/händel": "Gluck/Händel",
	"händel, georg friedrich":  "Gluck/Händel",
	"mozart, wolfgang amadeus": "Mozart", "mozart": "Mozart",
	"wolf, hugo": "Wolf", "hugo wolf": "Wolf",
	"brahms, johannes": "Brahms", "brahms": "Brahms",
	"schubert, franz": "Schubert", "schubert": "Schubert",
	"hindemith, paul": "Hindemith", "hindemith": "Hindemith",
	"bizet, georges": "Bizet", "bizet": "Bizet",
	"tschaikowsky, peter": "Tschaikowsky", "tschaikowsky": "Tschaikowsky",
	"mahler, gustav": "Mahler", "mahler": "Mahler",
	"barwinsky, wolodymyr": "Barwinsky", "barwinsky": "Barwinsky",
}

// ComposerRule ties a work or role keyword found in record titles to the
// composer it implies.
type ComposerRule struct {
	Keyword  string
	Composer string
}

// composerTitleRules is an ordered rule list; attribution takes the first
// matching keyword, so a title naming works of several composers resolves
// the same way on every run.
var composerTitleRules = []ComposerRule{
	{"ring", "Wagner"}, {"nibelungen", "Wagner"}, {"walküre", "Wagner"},
	{"rheingold", "Wagner"}, {"siegfried", "Wagner"}, {"götterdämmerung", "Wagner"},
	{"meistersinger", "Wagner"}, {"tristan", "Wagner"}, {"parsifal", "Wagner"},
	{"lohengrin", "Wagner"}, {"tannhäuser", "Wagner"},
	{"fricka", "Wagner"}, {"waltraute", "Wagner"}, {"erda", "Wagner"}, {"brangäne", "Wagner"},
	{"aida", "Verdi"}, {"amneris", "Verdi"}, {"trovatore", "Verdi"},
	{"azucena", "Verdi"}, {"maskenball", "Verdi"}, {"ulrica", "Verdi"},
	{"don carlos", "Verdi"}, {"eboli", "Verdi"},
	{"rosenkavalier", "Strauss"}, {"octavian", "Strauss"}, {"ariadne", "Strauss"},
	{"elektra", "Strauss"}, {"klytämnestra", "Strauss"}, {"frau ohne schatten", "Strauss"},
	{"orpheus", "Gluck/Händel"}, {"orfeo", "Gluck/Händel"},
	{"julius cäsar", "Gluck/Händel"}, {"händel", "Gluck/Händel"}, {"gluck", "Gluck/Händel"},
	{"fidelio", "Beethoven"}, {"beethoven", "Beethoven"},
}

// composerNames are excluded from the person matrix; composers belong in
// the Kosmos view, not the contact network.
var composerNames = map[string]struct{}{
	"wagner": {}, "verdi": {}, "strauss": {}, "beethoven": {}, "mozart": {},
	"brahms": {}, "schubert": {}, "wolf": {}, "gluck": {}, "händel": {},
	"hindemith": {}, "bizet": {}, "tschaikowsky": {}, "mahler": {},
	"barwinsky": {}, "puccini": {}, "weber": {},
}

// ComposerColors assigns display colors to canonical composer names.
var ComposerColors = map[string]string{
	"Wagner":       "#6B2C2C",
	"Verdi":        "#2C5C3F",
	"Strauss":      "#4A3A6B",
	"Gluck/Händel": "#8B7355",
	"Beethoven":    "#4A5A7A",
	"Mozart":       "#5A3D6B",
	"Wolf":         "#6B5A3D",
	"Brahms":       "#3D5A6B",
	"Andere":       "#757575",
}

// CategoryColors assigns display colors to person categories.
var CategoryColors = map[string]string{
	"Komponist":    "#6B2C2C",
	"Dirigent":     "#4A6E96",
	"Regisseur":    "#6B4E8C",
	"Korrepetitor": "#8B7355",
	"Vermittler":   "#3D7A5A",
	"Kollege":      "#9A6B3D",
	"Andere":       "#757575",
}

// DocTypeLabels maps document-type IDs to German display labels.
var DocTypeLabels = map[string]string{
	"brief":              "Brief",
	"programmheft":       "Programmheft",
	"plakat":             "Plakat",
	"rezension":          "Rezension",
	"zeitungsausschnitt": "Zeitungsausschnitt",
	"vertrag":            "Vertrag",
	"konvolut":           "Konvolut",
	"quittung":           "Quittung",
	"biographie":         "Biographie",
	"typoskript":         "Typoskript",
	"ausweis":            "Ausweis",
	"dokument":           "Dokument",
	"photokopie":         "Photokopie",
	"notiz":              "Notiz",
	"visitenkarte":       "Visitenkarte",
	"tontraeger":         "Tonträger",
	"telegramm":          "Telegramm",
	"postkarte":          "Postkarte",
	"fotografie":         "Fotografie",
	"urkunde":            "Urkunde",
	"noten":              "Noten",
	"manuskript":         "Manuskript",
	"rechnung":           "Rechnung",
	"sammlung":           "Sammlung",
	"korrespondenz":      "Korrespondenz",
}

// Periods are the fixed 5-year matrix buckets spanning the archive's
// active years.
var Periods = []string{
	"1940-1944", "1945-1949", "1950-1954", "1955-1959",
	"1960-1964", "1965-1969", "1970-1974",
}

// PeriodWidth is the bucket width of Periods in years.
const PeriodWidth = 5

// TektonikGroup is a named signature group of the archive Tektonik.
// A record belongs to a group when its signature contains Prefix and none
// of the ExcludePrefixes.
type TektonikGroup struct {
	Label           string
	Prefix          string
	ExcludePrefixes []string
}

// TektonikGroups mirrors the archive's physical organization.
var TektonikGroups = map[string]TektonikGroup{
	"Hauptbestand": {
		Label:           "Hauptbestand",
		Prefix:          "NIM_",
		ExcludePrefixes: []string{"NIM/PL_", "NIM_FS_", "NIM_TT_"},
	},
	"Plakate":     {Label: "Plakate", Prefix: "NIM/PL_"},
	"Fotografien": {Label: "Fotografien", Prefix: "NIM_FS_"},
	"Tonträger":   {Label: "Tonträger", Prefix: "NIM_TT_"},
}

// LifePhase is one biographical phase of the estate's subject, with its
// anchor location and the mobility form of the transition into the phase.
type LifePhase struct {
	ID       string
	Name     string
	From     int
	To       int
	Place    string
	Mobility string // "", "bildung", "erzwungen", "geografisch", "lebensstil"
}

// LifePhases is the static biographical phase table (from research, not
// derived from records).
var LifePhases = []LifePhase{
	{"LP1", "Kindheit & Jugend", 1919, 1937, "Lemberg", ""},
	{"LP2", "Ausbildung", 1937, 1944, "Lemberg", "bildung"},
	{"LP3", "Flucht & Neubeginn", 1944, 1945, "Wien", "erzwungen"},
	{"LP4", "Erste Festengagements", 1945, 1950, "Graz", "geografisch"},
	{"LP5", "Internationaler Aufstieg", 1950, 1955, "Wien/München", "geografisch"},
	{"LP6", "Höhepunkt", 1955, 1965, "international", "geografisch"},
	{"LP7", "Spätphase & Rückzug", 1965, 2009, "Zürich", "lebensstil"},
}

// Center describes the focus person of the estate, rendered at the hub of
// the Kosmos view and excluded from the contact matrix.
type Center struct {
	Name        string `json:"name"`
	Wikidata    string `json:"wikidata"`
	Lebensdaten string `json:"lebensdaten"`
	Fach        string `json:"fach"`
}

// FocusPerson is the subject of the estate.
var FocusPerson = Center{
	Name:        "Ira Malaniuk",
	Wikidata:    "Q94208",
	Lebensdaten: "1919–2009",
	Fach:        "Mezzosopran",
}
