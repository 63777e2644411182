// Package generator turns a loaded configuration into the site build tool's
// configuration file and records the run in a manifest.
//
// A run builds the site configuration, resolves the edit link, optionally
// checks the content tree, renders the selected format, writes it atomically
// and finally writes the run manifest. Unchanged output is left alone unless
// output.always_write is set.
package generator
