// Package usecase implements the SecretController (C5): the composition of
// C1 (Cryptographer), C3 (SecretSeriesStore) and C4 (SecretContentStore)
// into the "secret" abstraction callers actually use (spec.md §4.5).
package usecase

import (
	"sort"
	"time"

	"context"

	cryptoService "github.com/allisson/keywhiz-core/internal/crypto/service"
	"github.com/allisson/keywhiz-core/internal/database"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
	membershipUseCase "github.com/allisson/keywhiz-core/internal/membership/usecase"
	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
	secretsRepository "github.com/allisson/keywhiz-core/internal/secrets/repository"
	"github.com/allisson/keywhiz-core/internal/versionstamp"
)

// SecretController composes C1/C3/C4 into create/fetch/list/delete
// operations over the series+content model.
type SecretController interface {
	// Create builds a secret from input, per spec.md §4.5's builder
	// contract: reuses an existing series by name or creates one, encrypts
	// the plaintext, and inserts a content row. Fails with
	// secretsDomain.ErrContentVersionConflict if (series, version) already
	// exists; a freshly-created series is rolled back in that case.
	Create(ctx context.Context, input *CreateSecretInput) (*secretsDomain.Secret, error)

	// GetByNameAndVersion returns the content revision for (name, version).
	// An empty version fetches the unversioned revision, not "latest".
	GetByNameAndVersion(ctx context.Context, name, version string) (*secretsDomain.Secret, error)

	// GetByIDAndVersion returns the content revision for (seriesID, version).
	GetByIDAndVersion(ctx context.Context, seriesID int64, version string) (*secretsDomain.Secret, error)

	// GetLatestByID returns the series' highest-content-id revision: the
	// one used by listing/ACL responses (spec.md §4.7's "latest content").
	GetLatestByID(ctx context.Context, seriesID int64) (*secretsDomain.Secret, error)

	// GetLatestByName is GetLatestByID keyed by series name.
	GetLatestByName(ctx context.Context, name string) (*secretsDomain.Secret, error)

	// GetsByID returns every content revision of seriesID, ordered by
	// content id ascending.
	GetsByID(ctx context.Context, seriesID int64) ([]secretsDomain.Secret, error)

	// ListAll returns the cartesian of every series with each of its
	// content rows, ordered by series id then content id.
	ListAll(ctx context.Context) ([]secretsDomain.Secret, error)

	// DeleteSeries removes a series and every content row it owns.
	// Returns secretsDomain.ErrSeriesNotFound if no series has that name.
	DeleteSeries(ctx context.Context, name string) error

	// DeleteVersion removes a single content revision, leaving the series
	// row (and its name reservation) in place.
	DeleteVersion(ctx context.Context, name, version string) error
}

type secretController struct {
	db            secretsRepository.SecretSeriesRepository
	contentDB     secretsRepository.SecretContentRepository
	txManager     database.TxManager
	cryptographer cryptoService.Cryptographer
	membership    membershipUseCase.MembershipUseCase
}

// NewSecretController creates a SecretController backed by the given
// repositories, transaction manager, cryptographer, and membership use case.
// membership removes a deleted series' access grants (invariant 4); the
// accessgrants ON DELETE CASCADE foreign key remains a backstop.
func NewSecretController(
	seriesRepo secretsRepository.SecretSeriesRepository,
	contentRepo secretsRepository.SecretContentRepository,
	txManager database.TxManager,
	cryptographer cryptoService.Cryptographer,
	membership membershipUseCase.MembershipUseCase,
) SecretController {
	return &secretController{
		db:            seriesRepo,
		contentDB:     contentRepo,
		txManager:     txManager,
		cryptographer: cryptographer,
		membership:    membership,
	}
}

func (s *secretController) Create(
	ctx context.Context,
	input *CreateSecretInput,
) (*secretsDomain.Secret, error) {
	var result *secretsDomain.Secret

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()

		series, err := s.db.GetByName(ctx, input.Name)
		if apperrors.Is(err, secretsDomain.ErrSeriesNotFound) {
			series = &secretsDomain.SecretSeries{
				Name:              input.Name,
				Description:       input.Descr,
				Type:              input.Typ,
				GenerationOptions: input.GenOptions,
				Metadata:          input.Meta,
				CreatedAt:         now,
				CreatedBy:         input.Creator,
				UpdatedAt:         now,
				UpdatedBy:         input.Creator,
			}
			id, createErr := s.db.Create(ctx, series)
			if createErr != nil {
				return createErr
			}
			series.ID = id
		} else if err != nil {
			return err
		}

		version := input.Ver
		if version == "" && input.autoVer {
			version = versionstamp.Next().String()
		}

		envelope, err := s.cryptographer.Seal(series.Name, input.Plaintext)
		if err != nil {
			return err
		}

		content := &secretsDomain.SecretContent{
			SecretSeriesID:   series.ID,
			EncryptedContent: envelope,
			Version:          version,
			CreatedAt:        now,
			CreatedBy:        input.Creator,
			UpdatedAt:        now,
			UpdatedBy:        input.Creator,
		}
		contentID, err := s.contentDB.Create(ctx, content)
		if err != nil {
			return err
		}
		content.ID = contentID

		result = &secretsDomain.Secret{Series: *series, Content: *content}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *secretController) GetByNameAndVersion(
	ctx context.Context,
	name, version string,
) (*secretsDomain.Secret, error) {
	var result *secretsDomain.Secret
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		series, err := s.db.GetByName(ctx, name)
		if err != nil {
			return err
		}
		result, err = s.getByContentVersion(ctx, *series, version)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *secretController) GetByIDAndVersion(
	ctx context.Context,
	seriesID int64,
	version string,
) (*secretsDomain.Secret, error) {
	var result *secretsDomain.Secret
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		series, err := s.db.GetByID(ctx, seriesID)
		if err != nil {
			return err
		}
		result, err = s.getByContentVersion(ctx, *series, version)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *secretController) getByContentVersion(
	ctx context.Context,
	series secretsDomain.SecretSeries,
	version string,
) (*secretsDomain.Secret, error) {
	content, err := s.contentDB.GetBySeriesAndVersion(ctx, series.ID, version)
	if err != nil {
		return nil, err
	}
	return &secretsDomain.Secret{Series: series, Content: *content}, nil
}

func (s *secretController) GetLatestByID(ctx context.Context, seriesID int64) (*secretsDomain.Secret, error) {
	var result *secretsDomain.Secret
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		series, err := s.db.GetByID(ctx, seriesID)
		if err != nil {
			return err
		}
		result, err = s.getLatest(ctx, *series)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *secretController) GetLatestByName(ctx context.Context, name string) (*secretsDomain.Secret, error) {
	var result *secretsDomain.Secret
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		series, err := s.db.GetByName(ctx, name)
		if err != nil {
			return err
		}
		result, err = s.getLatest(ctx, *series)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// getLatest picks the content row with the highest id: ids are assigned in
// insertion order, so highest id is equivalent to "most recently created",
// the tiebreak spec.md §4.7 names.
func (s *secretController) getLatest(
	ctx context.Context,
	series secretsDomain.SecretSeries,
) (*secretsDomain.Secret, error) {
	contents, err := s.contentDB.ListBySeries(ctx, series.ID)
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return nil, secretsDomain.ErrContentNotFound
	}

	latest := contents[0]
	for _, content := range contents[1:] {
		if content.ID > latest.ID {
			latest = content
		}
	}
	return &secretsDomain.Secret{Series: series, Content: latest}, nil
}

func (s *secretController) GetsByID(ctx context.Context, seriesID int64) ([]secretsDomain.Secret, error) {
	var result []secretsDomain.Secret
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		series, err := s.db.GetByID(ctx, seriesID)
		if err != nil {
			return err
		}

		contents, err := s.contentDB.ListBySeries(ctx, seriesID)
		if err != nil {
			return err
		}

		result = make([]secretsDomain.Secret, 0, len(contents))
		for _, content := range contents {
			result = append(result, secretsDomain.Secret{Series: *series, Content: content})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *secretController) ListAll(ctx context.Context) ([]secretsDomain.Secret, error) {
	var result []secretsDomain.Secret
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		seriesList, err := s.db.ListAll(ctx)
		if err != nil {
			return err
		}
		sort.Slice(seriesList, func(i, j int) bool { return seriesList[i].ID < seriesList[j].ID })

		for _, series := range seriesList {
			contents, err := s.contentDB.ListBySeries(ctx, series.ID)
			if err != nil {
				return err
			}
			for _, content := range contents {
				result = append(result, secretsDomain.Secret{Series: series, Content: content})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *secretController) DeleteSeries(ctx context.Context, name string) error {
	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		series, err := s.db.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if err := s.membership.RemoveSeries(ctx, series.ID); err != nil {
			return err
		}
		return s.db.DeleteByName(ctx, name)
	})
}

func (s *secretController) DeleteVersion(ctx context.Context, name, version string) error {
	series, err := s.db.GetByName(ctx, name)
	if err != nil {
		return err
	}
	return s.contentDB.DeleteBySeriesAndVersion(ctx, series.ID, version)
}
