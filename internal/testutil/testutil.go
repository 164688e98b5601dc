// Package testutil provides shared test fixtures: a small but complete
// archive graph and a temporary data file helper.
package testutil

import (
	"os"
	"testing"

	"github.com/dhcraft/m3gim/internal/jsonld"
)

// graphJSON is a miniature export exercising every shape the store builder
// has to cope with: a Fonds, two Konvolute (one with a Folio cover sheet,
// one with a dangling child), name variants, junk placeholders, a leaked
// date in a location field, all four Tektonik branches, restricted and
// closed records, and unprocessed records.
const graphJSON = `{
  "@graph": [
    {
      "@id": "m3gim:fonds",
      "@type": "rico:RecordSet",
      "rico:hasRecordSetType": {"@id": "rico:Fonds"},
      "rico:title": "Nachlass Ira Malaniuk"
    },
    {
      "@id": "m3gim:NIM_003",
      "@type": "rico:RecordSet",
      "rico:hasRecordSetType": {"@id": "rico:Konvolut"},
      "rico:hasOrHadPart": [
        {"@id": "m3gim:NIM_003_Folio"},
        {"@id": "m3gim:NIM_003_1"},
        {"@id": "m3gim:NIM_003_2"}
      ]
    },
    {
      "@id": "m3gim:NIM_007",
      "@type": "rico:RecordSet",
      "rico:hasRecordSetType": {"@id": "rico:Konvolut"},
      "rico:title": "Konvolut 7",
      "rico:hasOrHadPart": [
        {"@id": "m3gim:NIM_007_1"},
        {"@id": "m3gim:MISSING"}
      ]
    },
    {
      "@id": "m3gim:NIM_003_Folio",
      "@type": "rico:Record",
      "rico:identifier": "UAKUG/NIM_003 Folio",
      "rico:title": "Briefe an Malaniuk 1952-1958"
    },
    {
      "@id": "m3gim:NIM_003_1",
      "@type": "rico:Record",
      "rico:identifier": "UAKUG/NIM_003 1",
      "rico:title": "Brief von Anton Dermota",
      "rico:date": "1952-07-23",
      "rico:hasDocumentaryFormType": {"@id": "m3gim-dft:brief"},
      "rico:hasOrHadAgent": {"name": "Dermota", "@id": "wd:Q123", "role": "absender"},
      "rico:hasOrHadLocation": [
        {"name": "Bayreuth", "role": "auffuehrungsort"},
        {"name": "1952-07-23"}
      ]
    },
    {
      "@id": "m3gim:NIM_003_2",
      "@type": "rico:Record",
      "rico:identifier": "UAKUG/NIM_003 2",
      "rico:title": "Brief an Ira Malaniuk",
      "rico:date": "1958-04-18",
      "rico:scopeAndContent": "Dank für den Rosenkavalier-Abend",
      "rico:hasDocumentaryFormType": {"@id": "m3gim-dft:brief"},
      "rico:hasOrHadAgent": [
        {"name": "Dermota, Anton", "@id": "wd:Q999", "role": "absender"},
        {"name": "Malaniuk, Ira", "role": "empfaenger"},
        {"name": "[Organi]", "@type": "rico:CorporateBody"}
      ],
      "m3gim:mentions": [{"name": "Y."}]
    },
    {
      "@id": "m3gim:NIM_007_1",
      "@type": "rico:Record",
      "rico:identifier": "UAKUG/NIM_007 1",
      "rico:title": "Quittung Hotel Sacher",
      "rico:date": "1955",
      "rico:hasDocumentaryFormType": {"@id": "m3gim-dft:quittung"},
      "m3gim:bearbeitungsstand": "erfasst"
    },
    {
      "@id": "m3gim:NIM_100",
      "@type": "rico:Record",
      "rico:identifier": "UAKUG/NIM_100",
      "rico:title": "Programmheft: Der Ring des Nibelungen, Bayreuth",
      "rico:date": "1952-07-23/1952-08-25",
      "rico:hasDocumentaryFormType": {"@id": "m3gim-dft:programmheft"},
      "rico:hasOrHadAgent": [{"name": "Karajan, Herbert von", "role": "dirigent"}],
      "rico:hasOrHadSubject": [
        {"@type": "m3gim:MusicalWork", "name": "Der Ring des Nibelungen", "komponist": "Wagner, Richard"}
      ],
      "m3gim:hasPerformanceRole": [{"name": "Fricka"}],
      "rico:hasOrHadLocation": [{"name": "Bayreuth", "role": "auffuehrungsort"}]
    },
    {
      "@id": "m3gim:PL_001",
      "@type": "rico:Record",
      "rico:identifier": "UAKUG/NIM/PL_001",
      "rico:title": "Plakat Aida, Staatsoper Wien",
      "rico:date": "1960-05-01",
      "rico:hasDocumentaryFormType": {"@id": "m3gim-dft:plakat"},
      "rico:hasOrHadSubject": [
        {"@type": "m3gim:MusicalWork", "name": "Aida", "komponist": "Verdi"}
      ],
      "rico:hasOrHadLocation": [{"name": "Wien", "role": "auffuehrungsort"}]
    },
    {
      "@id": "m3gim:FS_001",
      "@type": "rico:Record",
      "rico:identifier": "UAKUG/NIM_FS_001",
      "rico:title": "Foto mit Wieland Wagner",
      "rico:date": "1965",
      "rico:hasDocumentaryFormType": {"@id": "m3gim-dft:fotografie"},
      "m3gim:accessStatus": "eingeschraenkt",
      "rico:hasOrHadAgent": [{"name": "Wieland Wagner"}]
    },
    {
      "@id": "m3gim:TT_001",
      "@type": "rico:Record",
      "rico:identifier": "UAKUG/NIM_TT_001",
      "rico:title": "Tonbandaufnahme",
      "rico:date": "o.D.",
      "rico:hasDocumentaryFormType": {"@id": "m3gim-dft:tontraeger"},
      "m3gim:accessStatus": "gesperrt",
      "m3gim:bearbeitungsstand": "erfasst"
    },
    {
      "@id": "m3gim:NIM_900",
      "@type": "rico:Record",
      "rico:identifier": "UAKUG/NIM_900",
      "rico:title": "Unbearbeiteter Zettel"
    },
    {
      "@id": "m3gim:NIM_901",
      "@type": "rico:Record",
      "rico:identifier": "UAKUG/NIM_901",
      "rico:title": "Erfasster Zettel",
      "m3gim:bearbeitungsstand": "erfasst"
    }
  ],
  "m3gim:recordCount": 11,
  "m3gim:konvolutCount": 2,
  "m3gim:exportDate": "2024-11-02"
}`

// Graph parses the fixture export.
func Graph(t *testing.T) *jsonld.Document {
	t.Helper()
	doc, err := jsonld.Parse([]byte(graphJSON))
	if err != nil {
		t.Fatalf("parse fixture graph: %v", err)
	}
	return doc
}

// GraphJSON returns the raw fixture bytes for tests that exercise the
// file-loading path.
func GraphJSON() []byte {
	return []byte(graphJSON)
}

// TempFile writes data to a temp file and returns its path.
func TempFile(t *testing.T, data []byte) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "m3gim-*.jsonld")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write(data); err != nil {
		t.Fatal(err)
	}
	f.Close()
	return f.Name()
}
