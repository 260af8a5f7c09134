package platform

// Package platform contains OS integration glue: the user's downloads
// directory, saving fetched artifacts to disk and revealing them in the
// system file manager.
