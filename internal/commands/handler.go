package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/config"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/models"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/rating"
)

// RecordStore is the slice of the storage layer the interpreter depends on.
type RecordStore interface {
	GetPlayer(ctx context.Context, name string) (*models.Player, error)
	PlayerExists(ctx context.Context, name string) (bool, error)
	CreatePlayer(ctx context.Context, player *models.Player) error
	UpdatePlayerRating(ctx context.Context, name string, newRating int) error
	UpdatePlayerChatID(ctx context.Context, name string, chatID int64) error
	ListPlayers(ctx context.Context) ([]*models.Player, error)
	CreateMatch(ctx context.Context, match *models.Match) error
	ListMatches(ctx context.Context) ([]*models.Match, error)
	ListMatchesForPlayer(ctx context.Context, name string) ([]*models.Match, error)
	CountMatches(ctx context.Context) (int64, error)
	GetGroup(ctx context.Context, chatID int64) (*models.Group, error)
	CreateGroup(ctx context.Context, group *models.Group) error
	ListGroups(ctx context.Context) ([]*models.Group, error)
}

// Notifier delivers messages best-effort; delivery failures are logged by
// the implementation and never reach the interpreter.
type Notifier interface {
	SendMessage(chatID int64, text string)
	SendTyping(chatID int64)
}

type Handler struct {
	config   *config.Config
	store    RecordStore
	notifier Notifier
}

func NewHandler(cfg *config.Config, store RecordStore, notifier Notifier) *Handler {
	return &Handler{
		config:   cfg,
		store:    store,
		notifier: notifier,
	}
}

// Handle runs a single inbound message to completion. Errors never escape:
// anything unexpected becomes a generic reply and a log line, so the webhook
// can acknowledge the platform regardless.
func (h *Handler) Handle(ctx context.Context, env Envelope) {
	mc := NewMessageContext(ctx, env)

	h.notifier.SendTyping(env.ChatID)

	if err := h.dispatch(mc); err != nil {
		mc.L().Errorf("handling message: %v", err)
		h.notifier.SendMessage(env.ChatID, "An unexpected error happened.")
	}
}

func (h *Handler) dispatch(mc *MessageContext) error {
	env := mc.Env()

	if env.Sender == "" {
		h.notifier.SendMessage(env.ChatID, "We can't identify you. Please create a Telegram nickname and type /start.")
		return nil
	}
	if env.Text == "" {
		h.notifier.SendMessage(env.ChatID, "Text message is expected.")
		return nil
	}

	if env.Kind == ChatPrivate {
		if err := h.backfillChatID(mc); err != nil {
			mc.L().Warnf("backfilling chat id: %v", err)
		}
	}

	switch text := env.Text; {
	case env.Kind == ChatGroup && strings.HasPrefix(text, "/start"):
		return h.handleGroupStart(mc)
	case text == "/start":
		return h.handleStart(mc)
	case text == "/allmatches":
		return h.handleAllMatches(mc)
	case text == "/mymatches":
		return h.handleMyMatches(mc)
	case text == "/rating":
		return h.handleRating(mc)
	case text == "/allratings":
		return h.handleAllRatings(mc)
	case text == "/matchcount":
		return h.handleMatchCount(mc)
	case text == "/me":
		return h.handleMe(mc)
	case strings.HasPrefix(text, "/underthetable"):
		return h.handleUnderTheTable(mc)
	case strings.HasPrefix(text, "/match"):
		return h.handleMatch(mc)
	default:
		h.notifier.SendMessage(env.ChatID, fmt.Sprintf("Unknown command %q", text))
		return nil
	}
}

// backfillChatID fills in the private chat id of an already registered
// player the first time they talk to the bot directly.
func (h *Handler) backfillChatID(mc *MessageContext) error {
	env := mc.Env()

	player, err := h.store.GetPlayer(mc, env.Sender)
	if err != nil {
		return err
	}
	if player == nil || player.ChatID != 0 {
		return nil
	}

	mc.L().Infof("backfilling chat id for %s", env.Sender)
	return h.store.UpdatePlayerChatID(mc, env.Sender, env.ChatID)
}

func (h *Handler) handleStart(mc *MessageContext) error {
	env := mc.Env()

	exists, err := h.store.PlayerExists(mc, env.Sender)
	if err != nil {
		return err
	}
	if exists {
		h.notifier.SendMessage(env.ChatID, fmt.Sprintf(
			"Welcome back %s! You have already registered. To see your rating, type /rating. To record a match, type /match.",
			env.Sender,
		))
		return nil
	}

	player := &models.Player{
		ID:     uuid.New().String(),
		Name:   env.Sender,
		Rating: rating.Initial,
		ChatID: env.ChatID,
	}
	if err := h.store.CreatePlayer(mc, player); err != nil {
		return fmt.Errorf("creating player: %w", err)
	}

	mc.L().Infof("registered player %s", env.Sender)
	h.notifier.SendMessage(env.ChatID, fmt.Sprintf("Welcome %s!", env.Sender))
	return nil
}

func (h *Handler) handleGroupStart(mc *MessageContext) error {
	env := mc.Env()

	group, err := h.store.GetGroup(mc, env.ChatID)
	if err != nil {
		return err
	}
	if group != nil {
		h.notifier.SendMessage(env.ChatID, "This group is already on the list.")
		return nil
	}

	if err := h.store.CreateGroup(mc, &models.Group{ChatID: env.ChatID}); err != nil {
		return fmt.Errorf("creating group: %w", err)
	}

	mc.L().Infof("added group %d", env.ChatID)
	h.notifier.SendMessage(env.ChatID, "This group will now be notified whenever the top three changes.")
	return nil
}

func (h *Handler) handleAllMatches(mc *MessageContext) error {
	env := mc.Env()

	matches, err := h.store.ListMatches(mc)
	if err != nil {
		return err
	}

	h.notifier.SendMessage(env.ChatID, formatMatches(matches))
	return nil
}

func (h *Handler) handleMyMatches(mc *MessageContext) error {
	env := mc.Env()

	player, err := h.store.GetPlayer(mc, env.Sender)
	if err != nil {
		return err
	}
	if player == nil {
		h.notifier.SendMessage(env.ChatID, "You have not registered yet. To register, type /start.")
		return nil
	}

	matches, err := h.store.ListMatchesForPlayer(mc, player.Name)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		h.notifier.SendMessage(env.ChatID, "You have no matches recorded yet.")
		return nil
	}

	h.notifier.SendMessage(env.ChatID, formatMatches(matches))
	return nil
}

func (h *Handler) handleRating(mc *MessageContext) error {
	env := mc.Env()

	player, err := h.store.GetPlayer(mc, env.Sender)
	if err != nil {
		return err
	}
	if player == nil {
		h.notifier.SendMessage(env.ChatID, "You have not registered yet. To register, type /start.")
		return nil
	}

	h.notifier.SendMessage(env.ChatID, fmt.Sprintf("%s's rating is %d", player.Name, player.Rating))
	return nil
}

func (h *Handler) handleAllRatings(mc *MessageContext) error {
	env := mc.Env()

	players, err := h.store.ListPlayers(mc)
	if err != nil {
		return err
	}
	sortByRatingDesc(players)

	lines := make([]string, 0, len(players))
	for _, p := range players {
		lines = append(lines, fmt.Sprintf("%s (%d)", p.Name, p.Rating))
	}

	h.notifier.SendMessage(env.ChatID, "Best players according to rank:\n\n"+strings.Join(lines, "\n"))
	return nil
}

func (h *Handler) handleMatchCount(mc *MessageContext) error {
	env := mc.Env()

	count, err := h.store.CountMatches(mc)
	if err != nil {
		return err
	}

	h.notifier.SendMessage(env.ChatID, fmt.Sprintf("%d matches played so far.", count))
	return nil
}

func (h *Handler) handleMe(mc *MessageContext) error {
	env := mc.Env()

	player, err := h.store.GetPlayer(mc, env.Sender)
	if err != nil {
		return err
	}
	if player == nil {
		h.notifier.SendMessage(env.ChatID, "You have not registered yet. To register, type /start.")
		return nil
	}

	matches, err := h.store.ListMatchesForPlayer(mc, player.Name)
	if err != nil {
		return err
	}

	h.notifier.SendMessage(env.ChatID, fmt.Sprintf(
		"%s (rating %d) has played %d matches.",
		player.Name, player.Rating, len(matches),
	))
	return nil
}

// handleUnderTheTable reports, for every match with a scoreless side, the
// opponent of that side: the player who kept someone from scoring at all.
func (h *Handler) handleUnderTheTable(mc *MessageContext) error {
	env := mc.Env()

	matches, err := h.store.ListMatches(mc)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{})
	var names []string
	for _, m := range matches {
		var name string
		switch {
		case m.Player1Score == 0:
			name = m.Player2
		case m.Player2Score == 0:
			name = m.Player1
		default:
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	if len(names) == 0 {
		h.notifier.SendMessage(env.ChatID, "Nobody is under the table yet.")
		return nil
	}

	players, err := h.store.ListPlayers(mc)
	if err != nil {
		return err
	}
	ratings := make(map[string]int, len(players))
	for _, p := range players {
		ratings[p.Name] = p.Rating
	}
	sort.SliceStable(names, func(i, j int) bool {
		return ratings[names[i]] > ratings[names[j]]
	})

	h.notifier.SendMessage(env.ChatID, "Kept under the table: "+strings.Join(names, ", "))
	return nil
}

func formatMatches(matches []*models.Match) string {
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, m.String())
	}
	return strings.Join(lines, "\n")
}

func sortByRatingDesc(players []*models.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Rating > players[j].Rating
	})
}
