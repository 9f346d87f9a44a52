package kifu

// EntityKind names which payload an Entity carries.
type EntityKind string

const (
	KindSummaries EntityKind = "summaries"
	KindDetail    EntityKind = "detail"
	KindFriends   EntityKind = "friends"
	KindProfile   EntityKind = "profile"
)

// Entity is the canonical output of normalization. Exactly one payload
// field is set, matching Kind.
type Entity struct {
	Kind      EntityKind    `json:"kind"`
	Summaries []GameSummary `json:"summaries,omitempty"`
	Detail    *GameDetail   `json:"detail,omitempty"`
	Friends   *FriendList   `json:"friends,omitempty"`
	Profile   *UserProfile  `json:"profile,omitempty"`
}

// SummariesEntity wraps a list of game summaries.
func SummariesEntity(games []GameSummary) Entity {
	out := make([]GameSummary, len(games))
	copy(out, games)
	return Entity{Kind: KindSummaries, Summaries: out}
}

// DetailEntity wraps a game detail.
func DetailEntity(detail GameDetail) Entity {
	return Entity{Kind: KindDetail, Detail: &detail}
}

// FriendsEntity wraps a friend search result.
func FriendsEntity(list FriendList) Entity {
	return Entity{Kind: KindFriends, Friends: &list}
}

// ProfileEntity wraps a user profile.
func ProfileEntity(profile UserProfile) Entity {
	return Entity{Kind: KindProfile, Profile: &profile}
}
