package service

import (
	"context"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

type SettingsService struct {
	repo SettingsRepo
}

func NewSettingsService(r SettingsRepo) *SettingsService { return &SettingsService{repo: r} }

// Para updates parciales desde /config set
type SettingsPatch struct {
	PointsWin           *int
	PointsLoss          *int
	PointsMvp           *int
	TimeoutMinutes      *int
	ProofTimeoutMinutes *int
	NoProofPenalty      *int
	QueueSize           *int
	RankRolesEnabled    *bool
}

func (s *SettingsService) Get(ctx context.Context, guildID string) (domain.GuildSettings, error) {
	return s.repo.Get(ctx, guildID)
}

// Update valida campo por campo y solo pisa lo que vino en el patch.
// PointsLoss se normaliza a negativo acá: el ledger no flipea signos.
func (s *SettingsService) Update(ctx context.Context, guildID string, patch SettingsPatch) (domain.GuildSettings, error) {
	cur, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return domain.GuildSettings{}, err
	}

	if patch.PointsWin != nil {
		if err := domain.ValidatePoints(*patch.PointsWin); err != nil {
			return domain.GuildSettings{}, err
		}
		cur.PointsWin = *patch.PointsWin
	}
	if patch.PointsLoss != nil {
		v := *patch.PointsLoss
		if v > 0 {
			v = -v
		}
		if err := domain.ValidatePoints(-v); err != nil {
			return domain.GuildSettings{}, err
		}
		cur.PointsLoss = v
	}
	if patch.PointsMvp != nil {
		if err := domain.ValidatePoints(*patch.PointsMvp); err != nil {
			return domain.GuildSettings{}, err
		}
		cur.PointsMvp = *patch.PointsMvp
	}
	if patch.TimeoutMinutes != nil {
		if err := domain.ValidateTimeoutMinutes(*patch.TimeoutMinutes); err != nil {
			return domain.GuildSettings{}, err
		}
		cur.TimeoutMinutes = *patch.TimeoutMinutes
	}
	if patch.ProofTimeoutMinutes != nil {
		if err := domain.ValidateTimeoutMinutes(*patch.ProofTimeoutMinutes); err != nil {
			return domain.GuildSettings{}, err
		}
		cur.ProofTimeoutMinutes = *patch.ProofTimeoutMinutes
	}
	if patch.NoProofPenalty != nil {
		if err := domain.ValidatePoints(*patch.NoProofPenalty); err != nil {
			return domain.GuildSettings{}, err
		}
		cur.NoProofPenalty = *patch.NoProofPenalty
	}
	if patch.QueueSize != nil {
		if err := domain.ValidateQueueSize(*patch.QueueSize); err != nil {
			return domain.GuildSettings{}, err
		}
		cur.QueueSize = *patch.QueueSize
	}
	if patch.RankRolesEnabled != nil {
		cur.RankRolesEnabled = *patch.RankRolesEnabled
	}

	if err := s.repo.Upsert(ctx, cur); err != nil {
		return domain.GuildSettings{}, err
	}
	return cur, nil
}
