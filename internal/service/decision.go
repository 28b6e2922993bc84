package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"procurement/models"
)

// Кворум одобрений не превышает трех голосов, сколько бы ответственных
// ни было в организации.
const maxQuorum = 3

// SubmitDecision проводит решение ответственного по предложению.
//
// Отклонение единолично переводит предложение в Canceled. Одобрение
// публикует предложение, когда набирается кворум min(3, R), где R —
// число ответственных организации; решение, закрывшее кворум, отдельной
// строкой не сохраняется. Повторные решения одного пользователя
// считаются как поданы, если не включен Engine.DedupeReviewers.
func (e *Engine) SubmitDecision(ctx context.Context, bidID uuid.UUID, decision models.Decision, username string) (*models.Bid, error) {
	var out *models.Bid
	err := e.store.InTx(ctx, func(tx Tx) error {
		b, err := tx.BidForUpdate(ctx, bidID)
		if err != nil {
			return err
		}
		if b.Status.Terminal() {
			return fmt.Errorf("%w: bid is already %s", ErrConflict, b.Status)
		}

		switch decision {
		case models.DecisionRejected:
			b.Status = models.BidCanceled
		case models.DecisionApproved:
			responsibles, err := tx.ResponsibleCount(ctx, b.OrganizationID)
			if err != nil {
				return fmt.Errorf("count responsibles: %w", err)
			}
			quorum := responsibles
			if quorum > maxQuorum {
				quorum = maxQuorum
			}
			prior, err := tx.BidDecisions(ctx, bidID)
			if err != nil {
				return fmt.Errorf("list decisions: %w", err)
			}
			if e.approvalTally(prior, username) >= quorum {
				b.Status = models.BidPublished
			} else if err := tx.AppendBidDecision(ctx, models.BidDecision{
				BidID:     bidID,
				Decision:  decision,
				Username:  username,
				CreatedAt: e.now(),
			}); err != nil {
				return fmt.Errorf("append decision: %w", err)
			}
		default:
			return fmt.Errorf("%w: unknown decision %q", ErrInvalidArgument, decision)
		}

		b.UpdatedAt = e.now()
		if err := tx.SaveBid(ctx, b); err != nil {
			return fmt.Errorf("save bid: %w", err)
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// approvalTally считает одобрения с учетом текущего, еще не записанного
// решения. В режиме DedupeReviewers учитываются только уникальные
// пользователи, иначе каждая поданная строка.
func (e *Engine) approvalTally(prior []models.BidDecision, reviewer string) int {
	if !e.DedupeReviewers {
		n := 1
		for _, d := range prior {
			if d.Decision == models.DecisionApproved {
				n++
			}
		}
		return n
	}
	seen := map[string]struct{}{reviewer: {}}
	for _, d := range prior {
		if d.Decision == models.DecisionApproved {
			seen[d.Username] = struct{}{}
		}
	}
	return len(seen)
}
