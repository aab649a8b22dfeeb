package redis

const (
	// KeySubmissions is the hash of JSON records keyed by submission id.
	KeySubmissions = "cfdesk:submissions"
	// KeySubmissionsByTime is the zset indexing submission ids by creationTimeSeconds.
	KeySubmissionsByTime = "cfdesk:submissions:bytime"

	// KeyCatalogSnapshot holds the JSON catalog snapshot plus its fetch timestamp.
	KeyCatalogSnapshot = "cfdesk:catalog:snapshot"

	// KeyPrefixFolder is the prefix for custom folder keys.
	KeyPrefixFolder = "cfdesk:folder:"
	// KeyAllFolders is the set of all custom folder ids.
	KeyAllFolders = "cfdesk:folders:all"
)

// FolderKey returns the redis key for a custom folder by id.
func FolderKey(id string) string {
	return KeyPrefixFolder + id
}
