package domain

// Sound is one entry of the sound catalog: an audio clip plus an optional
// icon shown on the timeline. Matches the soundlist.json format shipped
// with the client assets.
type Sound struct {
	Audio string `json:"audio"`
	Icon  string `json:"icon,omitempty"`
}
