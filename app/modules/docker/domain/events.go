// Package dockerdomain holds the Docker Hub webhook event types.
package dockerdomain

// PushData describes the pushed tag.
type PushData struct {
	PushedAt int64  `json:"pushed_at"`
	Pusher   string `json:"pusher"`
	Tag      string `json:"tag"`
}

// Repository is the Docker Hub repository a push landed in.
type Repository struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Owner     string `json:"owner"`
	RepoName  string `json:"repo_name"`
	RepoURL   string `json:"repo_url"`
	IsPrivate bool   `json:"is_private"`
	Status    string `json:"status"`
}

// PushEvent is the payload Docker Hub posts on every image push.
type PushEvent struct {
	CallbackURL string     `json:"callback_url"`
	PushData    PushData   `json:"push_data"`
	Repository  Repository `json:"repository"`
}
