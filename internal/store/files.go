package store

// File names of the two persisted documents inside the data directory.
const (
	VideosFile = "shared_videos.json"
	UsersFile  = "users_data.json"
)

// TimestampLayout is the ISO-8601 UTC form with milliseconds used for every
// stored timestamp, matching the existing data files.
const TimestampLayout = "2006-01-02T15:04:05.000Z"
