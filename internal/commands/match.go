package commands

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/models"
	"github.com/thekirsila/telegram-pingpong-ranking/internal/rating"
)

const (
	minScore = 0
	maxScore = 25
)

const matchUsage = "Usage: /match <player1> <player2> <player1_score> <player2_score> " +
	"where player1 and player2 are telegram usernames and player1_score and player2_score are integers."

// handleMatch records a match: validation short-circuits before any write,
// then the match row and both rating updates are persisted, both players are
// notified, and a leaderboard change is broadcast to registered groups.
func (h *Handler) handleMatch(mc *MessageContext) error {
	env := mc.Env()

	args := strings.Fields(env.Text)
	if len(args) < 5 {
		h.notifier.SendMessage(env.ChatID, matchUsage)
		return nil
	}
	player1 := strings.ToLower(args[1])
	player2 := strings.ToLower(args[2])

	topBefore, err := h.topThree(mc)
	if err != nil {
		return err
	}

	score1, err1 := strconv.Atoi(args[3])
	score2, err2 := strconv.Atoi(args[4])
	if err1 != nil || err2 != nil {
		h.notifier.SendMessage(env.ChatID, "Invalid score(s)")
		return nil
	}
	if score1 < minScore || score1 > maxScore || score2 < minScore || score2 > maxScore {
		h.notifier.SendMessage(env.ChatID, "A score must be over 0 and feasible (less than 25)")
		return nil
	}

	first, err := h.store.GetPlayer(mc, player1)
	if err != nil {
		return err
	}
	second, err := h.store.GetPlayer(mc, player2)
	if err != nil {
		return err
	}
	if first == nil || second == nil {
		h.notifier.SendMessage(env.ChatID, "One of the players doesn't exist. Both players have to register with /start before a match can be recorded.")
		return nil
	}

	// Both new ratings come from the pre-match values.
	newRating1, newRating2 := rating.NewRatings(first.Rating, second.Rating, score1, score2)

	if err := h.saveMatch(mc, first.Name, second.Name, score1, score2, newRating1, newRating2); err != nil {
		mc.L().Errorf("saving match: %v", err)
		h.notifier.SendMessage(env.ChatID, "Error saving match.")
		return nil
	}

	mc.L().Infof(
		"recorded match %s %d - %d %s, new ratings %d and %d",
		first.Name, score1, score2, second.Name, newRating1, newRating2,
	)

	h.notifyPlayer(env.Sender, first, second, score1, score2, newRating1)
	h.notifyPlayer(env.Sender, second, first, score2, score1, newRating2)

	h.notifier.SendMessage(env.ChatID, fmt.Sprintf(
		"Match saved! The new ratings are %d (%s) and %d (%s)",
		newRating1, first.Name, newRating2, second.Name,
	))

	if err := h.broadcastTopThreeChange(mc, topBefore); err != nil {
		mc.L().Warnf("broadcasting top three change: %v", err)
	}
	return nil
}

// saveMatch issues three independent writes. There is no transaction: a
// failure partway can leave match history and ratings out of sync.
func (h *Handler) saveMatch(mc *MessageContext, player1, player2 string, score1, score2, newRating1, newRating2 int) error {
	match := &models.Match{
		ID:           uuid.New().String(),
		Player1:      player1,
		Player2:      player2,
		Player1Score: score1,
		Player2Score: score2,
	}
	if err := h.store.CreateMatch(mc, match); err != nil {
		return fmt.Errorf("creating match: %w", err)
	}

	if err := h.store.UpdatePlayerRating(mc, player1, newRating1); err != nil {
		return fmt.Errorf("updating rating of %s: %w", player1, err)
	}
	if err := h.store.UpdatePlayerRating(mc, player2, newRating2); err != nil {
		return fmt.Errorf("updating rating of %s: %w", player2, err)
	}
	return nil
}

// notifyPlayer tells a match participant about the recorded result from
// their own perspective. The sender already gets the summary reply, and a
// player without a known private chat cannot be reached.
func (h *Handler) notifyPlayer(sender string, player, opponent *models.Player, myScore, theirScore, newRating int) {
	if player.Name == sender || player.ChatID == 0 {
		return
	}

	h.notifier.SendMessage(player.ChatID, fmt.Sprintf(
		"A match against %s was just recorded: you %s %d - %d. Your new rating is %d.",
		opponent.Name, resultWord(myScore, theirScore), myScore, theirScore, newRating,
	))
}

func resultWord(myScore, theirScore int) string {
	switch {
	case myScore > theirScore:
		return "won"
	case myScore == theirScore:
		return "drew"
	default:
		return "lost"
	}
}

func (h *Handler) topThree(mc *MessageContext) ([]string, error) {
	players, err := h.store.ListPlayers(mc)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	sortByRatingDesc(players)

	names := make([]string, 0, 3)
	for _, p := range players[:min(3, len(players))] {
		names = append(names, p.Name)
	}
	return names, nil
}

func (h *Handler) broadcastTopThreeChange(mc *MessageContext, before []string) error {
	after, err := h.topThree(mc)
	if err != nil {
		return err
	}
	if slices.Equal(before, after) {
		return nil
	}

	groups, err := h.store.ListGroups(mc)
	if err != nil {
		return fmt.Errorf("listing groups: %w", err)
	}

	text := "A change in power! The top three is now: " + strings.Join(after, ", ")
	for _, group := range groups {
		h.notifier.SendMessage(group.ChatID, text)
	}

	mc.L().Infof("top three changed, notified %d groups", len(groups))
	return nil
}
