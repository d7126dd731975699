// Package csvfile reads and writes the record CSV layout.
//
// Two adapters live here. Files implements the RecordFiles port for the
// audit, import and export paths: it keeps every data row so findings
// line up with file line numbers. Source implements the RecordSource
// port for the build path: it loads the three fixed exports from a data
// directory and drops rows without a name, matching what the site
// actually lists.
//
// Readers accept legacy header spellings ("Veterinarian Name(s)",
// "ZIP Code") and map them onto the canonical field names; unknown
// columns pass through under their own name. Writers always emit the
// canonical column layout.
package csvfile
