package render

import (
	"bitwise74/game-api/internal/model"
	"strconv"
)

// Resource is a single JSON:API resource object
type Resource struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    map[string]any          `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// Identifier points at a resource without its attributes
type Identifier struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Relationship holds either one Identifier or a slice of them
type Relationship struct {
	Data any `json:"data"`
}

// Document is the top level response body
type Document struct {
	Data     any        `json:"data"`
	Included []Resource `json:"included,omitempty"`
}

func id(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

func User(u *model.User) Resource {
	return Resource{
		ID:   id(u.ID),
		Type: "user",
		Attributes: map[string]any{
			"email": u.Email,
		},
	}
}

// Session renders a session. The token is present only when the session is
// active.
func Session(s *model.Session) Resource {
	return Resource{
		ID:   id(s.ID),
		Type: "session",
		Attributes: map[string]any{
			"token": s.Token,
		},
		Relationships: map[string]Relationship{
			"user": {Data: Identifier{ID: id(s.UserID), Type: "user"}},
		},
	}
}

func Player(p *model.Player) Resource {
	return Resource{
		ID:   id(p.ID),
		Type: "player",
		Attributes: map[string]any{
			"user_id": p.UserID,
			"game_id": p.GameID,
		},
	}
}

func Game(g *model.Game) Resource {
	players := make([]Identifier, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, Identifier{ID: id(p.ID), Type: "player"})
	}

	return Resource{
		ID:   id(g.ID),
		Type: "game",
		Attributes: map[string]any{
			"name":    g.Name,
			"started": g.Started,
		},
		Relationships: map[string]Relationship{
			"players": {Data: players},
			"creator": {Data: Identifier{ID: id(g.CreatorID), Type: "user"}},
		},
	}
}

// SessionDocument renders a session with its owner included
func SessionDocument(s *model.Session) Document {
	doc := Document{Data: Session(s)}
	if s.User != nil {
		doc.Included = []Resource{User(s.User)}
	}

	return doc
}

// UserDocument renders a user with its session included
func UserDocument(u *model.User) Document {
	res := User(u)
	doc := Document{Data: res}

	if u.Session != nil {
		res.Relationships = map[string]Relationship{
			"session": {Data: Identifier{ID: id(u.Session.ID), Type: "session"}},
		}
		doc.Data = res
		doc.Included = []Resource{Session(u.Session)}
	}

	return doc
}

// GameDocument renders a game with its players included
func GameDocument(g *model.Game) Document {
	doc := Document{Data: Game(g)}

	for i := range g.Players {
		doc.Included = append(doc.Included, Player(&g.Players[i]))
	}

	return doc
}

func GamesDocument(games []model.Game) Document {
	data := make([]Resource, 0, len(games))
	for i := range games {
		data = append(data, Game(&games[i]))
	}

	return Document{Data: data}
}
