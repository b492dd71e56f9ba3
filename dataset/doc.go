// Package dataset implements ingestion of user-supplied datasets.
//
// A Dataset is an opaque JSON document: algoviz never inspects its schema and
// forwards it verbatim to the compute service. Parse turns a byte source into
// a Dataset, and Store holds the single active Dataset of a session.
//
// # Atomicity
//
// Parse reads and validates the whole input before returning, so a failed
// load never yields a partial Dataset. Store.Replace swaps the pointer in one
// step; readers observe either the previous or the new Dataset.
package dataset
