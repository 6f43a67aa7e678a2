package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/upgrad/stackoverflow/internal/core/domain"
	"github.com/upgrad/stackoverflow/internal/core/ports"
)

// Action names a protected operation and the messages its failures carry.
// Empty messages fall back to the sentinel's default.
type Action struct {
	Name         string
	SignedOutMsg string
	ForbiddenMsg string
}

var (
	ActionCreateQuestion = Action{
		Name:         "create question",
		SignedOutMsg: "User is signed out.Sign in first to post a question",
	}
	ActionCreateAnswer = Action{
		Name:         "create answer",
		SignedOutMsg: "User is signed out.Sign in first to post an answer",
	}
	ActionEditAnswer = Action{
		Name:         "edit answer",
		SignedOutMsg: "User is signed out.Sign in first to edit an answer",
		ForbiddenMsg: "Only the answer owner can edit the answer",
	}
	ActionDeleteAnswer = Action{
		Name:         "delete answer",
		SignedOutMsg: "User is signed out.Sign in first to delete an answer",
		ForbiddenMsg: "Only the answer owner or admin can delete the answer",
	}
	ActionListAnswers = Action{
		Name:         "list answers",
		SignedOutMsg: "User is signed out.Sign in first to get the answers",
	}
	ActionDeleteUser = Action{
		Name:         "delete user",
		ForbiddenMsg: "Unauthorized Access, Entered user is not an admin",
	}
)

// Guard layers role and ownership rules over the authorization predicate.
// None of its checks touch the target resource.
type Guard struct {
	auth ports.Authenticator
	log  zerolog.Logger
}

func NewGuard(auth ports.Authenticator, log zerolog.Logger) *Guard {
	return &Guard{auth: auth, log: log}
}

// Principal runs the authorization predicate for act.
func (g *Guard) Principal(ctx context.Context, token string, act Action) (*domain.User, error) {
	user, err := g.auth.Authenticate(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSignedOut) && act.SignedOutMsg != "" {
			return nil, domain.ErrSignedOut.WithMessage(act.SignedOutMsg)
		}
		return nil, err
	}
	return user, nil
}

// RequireAdmin admits only admins.
func (g *Guard) RequireAdmin(p *domain.User, act Action) error {
	if p.IsAdmin() {
		return nil
	}
	return g.deny(p, act)
}

// RequireOwnerOrAdmin admits the resource owner or any admin.
func (g *Guard) RequireOwnerOrAdmin(p *domain.User, ownerID string, act Action) error {
	if p.ID == ownerID || p.IsAdmin() {
		return nil
	}
	return g.deny(p, act)
}

// RequireOwner admits only the resource owner. Admins get no override here.
func (g *Guard) RequireOwner(p *domain.User, ownerID string, act Action) error {
	if p.ID == ownerID {
		return nil
	}
	return g.deny(p, act)
}

func (g *Guard) deny(p *domain.User, act Action) error {
	g.log.Info().
		Str("user_id", p.ID).
		Str("role", string(p.Role)).
		Str("action", act.Name).
		Msg("authorization denied")
	if act.ForbiddenMsg != "" {
		return domain.ErrForbidden.WithMessage(act.ForbiddenMsg)
	}
	return domain.ErrForbidden
}
