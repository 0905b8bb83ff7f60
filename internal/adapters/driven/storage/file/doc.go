// Package file stores the generated viewer artifacts and reads summary
// documents on the local filesystem.
//
// Layout of the output directory:
//
//	groups.json         published group list
//	search-index.json   flat section index
//	topic-index.json    per-group topic counts
//	summaries/<id>.md   summary copies keyed by safe group ID
package file
