package mcpserver

// DataModelContract documents the archive data model for MCP clients,
// exposed as the m3gim://data-model resource.
const DataModelContract = `# M3GIM Archive Data Model

The archive is loaded from a single JSON-LD export produced by the
collection management system. All IDs are compact IRIs in the ` + "`m3gim:`" + `
namespace (e.g. ` + "`m3gim:NIM_003_1`" + `).

## Node types

- ` + "`rico:RecordSet`" + ` with more than one child is a **Konvolut**: a physical
  grouping of records (e.g. a bundle of letters). Konvolute carry derived
  metadata: a title, a date range and the list of child record IDs.
- ` + "`rico:Record`" + ` is a single archival unit. Records whose signature ends
  in a folio suffix (e.g. ` + "`fol. 1r`" + `) are folio-level descriptions inside
  a parent record.

## Record fields

| Field | Meaning |
|-------|---------|
| ` + "`id`" + ` | Graph ID, stable across exports |
| ` + "`signatur`" + ` | Archival call number (e.g. ` + "`UAKUG/NIM_003 1`" + `) |
| ` + "`titel`" + ` | Display title |
| ` + "`umfang`" + ` | Scope and content note |
| ` + "`typ`" + ` | Document type (` + "`brief`" + `, ` + "`plakat`" + `, ` + "`programmheft`" + `, ` + "`foto`" + `, ` + "`tontraeger`" + `, ...) |
| ` + "`zugang`" + ` | Access status: ` + "`offen`" + `, ` + "`eingeschraenkt`" + ` or ` + "`gesperrt`" + ` |
| ` + "`datum`" + ` | EDTF-style date: year, year-month, full date or a ` + "`/`" + ` range |
| ` + "`konvolutId`" + ` | Parent Konvolut, when the record belongs to one |

## Entity links

Records link to authority entities, each with a display name and an
optional Wikidata QID:

- **Persons**: correspondence partners and agents, plus mentioned persons.
- **Organizations**: opera houses, broadcasters, publishers.
- **Locations**: places, each with a role. The role ` + "`erscheinungsdatum`" + `
  marks a publication place rather than a performance venue.
- **Works**: musical works (` + "`m3gim:MusicalWork`" + `) carrying a composer.
- **Performance roles**: operatic parts sung in the documented event.

## Tektonik

Signatures encode the archival tectonics. The leading signature segment
groups records into holdings (Hauptbestand, Plakate, Tontraeger, ...),
which the ` + "`/counts`" + ` endpoint and the filter service expose.

## Aggregates

Three precomputed views are derived from the full record set:

- **Matrix**: person encounters per five-year period (1940-1974), with an
  intensity score weighted by document type.
- **Kosmos**: composers and works in the repertoire, with document counts.
- **Mobility**: life phases and relocations with evidence documents.
`
