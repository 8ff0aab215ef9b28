package source

// Blacklist holds moment ids that are never migrated, independent of the
// export file. Entries came from manual review of broken or duplicated
// records in real exports.
var Blacklist = []string{
	"9e3b0f3a-2f31-4e6e-8d55-malformed-01",
	"9e3b0f3a-2f31-4e6e-8d55-malformed-02",
}
