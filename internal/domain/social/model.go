package social

// Post is one social feed entry. Avatar carries two-letter initials for
// consumers that cannot load AvatarURL; Timestamp keeps the raw ISO string
// for newest-first ordering.
type Post struct {
	Author    string `json:"author"`
	Handle    string `json:"handle"`
	Avatar    string `json:"avatar"`
	AvatarURL string `json:"avatarUrl"`
	Text      string `json:"text"`
	Time      string `json:"time"`
	Timestamp string `json:"timestamp"`
}
