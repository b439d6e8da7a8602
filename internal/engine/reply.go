package engine

import (
	"context"
	"fmt"

	"github.com/scottlepp/gen/internal/core/domain"
)

// RunReply commits one reply authored by a post owner to a fresh
// human-authored comment on their post. Eligible comments are the most
// recent on their post within the window, are not self-comments, and have
// no owner reply after them.
func (e *Engine) RunReply(ctx context.Context) error {
	comments, err := e.store.RecentComments(ctx, EligibilityWindow)
	if err != nil {
		return fmt.Errorf("fetch recent comments: %w", err)
	}
	eligible := filterCandidates(comments, eligibleReplyTarget)
	e.logReplySkips(comments, eligible)

	target, err := pickOne(e.rng, eligible)
	if err != nil {
		return err
	}

	style, err := pickOne(e.rng, replyStyles)
	if err != nil {
		return err
	}
	example, err := pickOne(e.rng, style.Examples)
	if err != nil {
		return err
	}

	raw, err := e.brain.GenerateText(ctx, replyPrompt(target, style, example))
	if err != nil {
		return fmt.Errorf("generate reply: %w", err)
	}
	content, err := parseContentPayload(raw)
	if err != nil {
		return err
	}

	reply := domain.Comment{
		PostID:  target.PostID,
		Content: content,
		Author:  target.PostAuthor,
		UserID:  target.PostUserID,
	}
	id, err := e.store.CreateComment(ctx, reply)
	if err != nil {
		return err
	}

	e.log.Info("reply committed",
		"comment_id", id, "in_reply_to", target.Comment.ID, "post_id", target.PostID)
	e.notifyCommitted(ctx, "New reply",
		fmt.Sprintf("%s replied to %s on %q", target.PostAuthor, target.Author, target.PostTitle))
	return nil
}

// logReplySkips emits per-reason counters for excluded reply targets.
func (e *Engine) logReplySkips(all, eligible []domain.CommentCandidate) {
	var selfComments, stale, ownerReplied, generated int
	for _, c := range all {
		switch {
		case c.UserID == c.PostUserID:
			selfComments++
		case !c.IsLatestOnPost:
			stale++
		case c.PostOwnerRepliedAfter:
			ownerReplied++
		case domain.IsGeneratedUser(c.UserID):
			generated++
		}
	}
	e.log.Debug("reply target candidates",
		"recent", len(all), "eligible", len(eligible),
		"skipped_self", selfComments, "skipped_stale", stale,
		"skipped_owner_replied", ownerReplied, "skipped_generated", generated)
}
