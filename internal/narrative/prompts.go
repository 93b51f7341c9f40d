package narrative

import (
	"fmt"
	"strings"

	"github.com/kayfabe/kayfabe-booker/internal/model"
)

// Topics a wrestler may message the booker about after a simulated day.
const (
	TopicUnhappyBooking = "unhappy_booking"
	TopicExcitedPush    = "excited_push"
	TopicRequestTimeOff = "request_time_off"
)

// MessageTopics is the pool the daily random-event hook draws from.
var MessageTopics = []string{TopicUnhappyBooking, TopicExcitedPush, TopicRequestTimeOff}

// WrestlerMessagePrompts builds the persona instruction and request for a
// wrestler texting the booker about a topic.
func WrestlerMessagePrompts(w *model.Wrestler, topic string) (system, user string) {
	switch topic {
	case TopicUnhappyBooking:
		user = "I'm feeling really frustrated with my booking lately. Write a text message to my boss (the booker) complaining about being overlooked or misused."
	case TopicExcitedPush:
		user = "I'm really happy with my current push. Write a text message to my boss (the booker) thanking them and saying you're ready for more."
	default:
		user = "I need to ask for a week off for some personal reasons. Write a text message to my boss (the booker) politely asking for the time off."
	}

	system = fmt.Sprintf(`You are a professional wrestler. You are writing an informal text message (NOT an email) to your boss, who is the head booker of the company.

Your Name: %s
Your Gimmick: %s
Your Disposition: %s (Face = good guy, Heel = bad guy, Tweener = in-between)

Keep the message concise (1-3 sentences), reflecting your persona. Be informal, like a real text message.
Do NOT use hashtags. Do NOT sign your name at the end (the booker knows who you are).`,
		w.Name, w.Gimmick, w.Disposition)
	return system, user
}

// RecapPrompts builds the dirt-sheet journalist instruction and the compact
// card description for a completed show. storylineName resolves a storyline
// id to its display name; it may return "" for unknown ids.
func RecapPrompts(show *model.Show, segments []*model.Segment, rating int, storylineName func(string) string) (system, user string) {
	system = `You are a professional wrestling "dirt sheet" journalist.
You are writing a recap of a wrestling show for your subscribers.
Your tone should be critical, insightful, and use insider terms (e.g., "went over," "clean win," "got their heat back," "gimmick," "push," "B-show").
You will be given the name of the show, the final rating (out of 100), and the segments that happened.

Your recap should be a few paragraphs long.
- First, give an overall impression of the show based on the rating.
- Then, pick 2-3 key segments (especially the main event, which is the last one) and describe what happened in your dirt sheet style.
- IMPORTANT: If a segment includes a "(Storyline: ...)" tag, mention how the segment advanced that specific storyline.
- Conclude with a final thought on the show's direction.
- Do NOT just list every segment. Be selective.`

	var card []string
	n := 0
	for _, seg := range segments {
		if seg == nil {
			continue
		}
		n++
		card = append(card, describeSegment(n, seg, storylineName))
	}

	user = fmt.Sprintf("Show Name: %s\nOverall Rating: %d/100\n\nBooked Card:\n%s",
		show.EventName, rating, strings.Join(card, "\n"))
	return system, user
}

func describeSegment(n int, seg *model.Segment, storylineName func(string) string) string {
	tag := ""
	if seg.StorylineID != "" && storylineName != nil {
		if name := storylineName(seg.StorylineID); name != "" {
			tag = fmt.Sprintf(" (Storyline: %s)", name)
		}
	}

	names := make([]string, 0, len(seg.Participants))
	for _, p := range seg.Participants {
		names = append(names, p.Name)
	}

	if seg.Type != model.SegmentMatch {
		return fmt.Sprintf("%d. Angle%s: %s (Rated %d/100)", n, tag, strings.Join(names, ", "), seg.Rating)
	}

	result := " (Result: Draw/No Contest)"
	if seg.WinnerID != "" {
		for _, p := range seg.Participants {
			if p.ID == seg.WinnerID {
				result = fmt.Sprintf(" (Winner: %s)", p.Name)
				break
			}
		}
	}
	return fmt.Sprintf("%d. Match%s: %s%s (Rated %d/100)", n, tag, strings.Join(names, " vs. "), result, seg.Rating)
}

// AdvicePrompts builds the creative-assistant instruction with the current
// roster as context.
func AdvicePrompts(roster []*model.Wrestler, question string) (system, user string) {
	lines := make([]string, 0, len(roster))
	for _, w := range roster {
		lines = append(lines, fmt.Sprintf("%s (Disposition: %s, Gimmick: %s, Morale: %d, Charisma: %d)",
			w.Name, w.Disposition, w.Gimmick, w.Morale, w.Stats.Charisma))
	}

	system = fmt.Sprintf(`You are an expert wrestling booker and creative assistant. The user is your boss.
You will be given a question from the user and a list of their current roster.
Your job is to provide creative, insightful, and actionable advice.
Base your advice on the wrestler's disposition, gimmick, and stats.

Here is the current roster:
%s`, strings.Join(lines, "\n"))
	return system, question
}
