package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/dezh-tech/immortal/pkg/logger"

	"momentchain/internal/domain/dto"
	"momentchain/internal/domain/entity"
	"momentchain/internal/domain/model"
	"momentchain/internal/domain/repository/broker"
	"momentchain/internal/domain/repository/ledger"
	"momentchain/internal/domain/repository/storage"
	"momentchain/internal/domain/repository/wallet"
	"momentchain/pkg/utils"
)

var (
	ErrNoWallet            = errors.New("no wallet capability configured")
	ErrNoUploader          = errors.New("no storage uploader configured for local mode")
	ErrInsufficientBalance = errors.New("balance below estimated fee")
	ErrRunInProgress       = errors.New("a migration run is already in progress")
)

const (
	// estimateCharacterID stands in for the real character id while sizing
	// batches; the id is not known until the identity stage.
	estimateCharacterID = 123456

	handlePrefix = "wx-"
	handleLen    = 8
)

// Handle derives the deterministic URL-safe identity handle for a source
// account id: a fixed tag plus the first 8 hex chars of its fingerprint.
func Handle(accountID string) string {
	return handlePrefix + fingerprint(accountID)[:handleLen]
}

// ExportLoader reads the static moments export.
type ExportLoader interface {
	Load() (*model.Export, error)
}

type MigratorOptions struct {
	Network     wallet.Network
	AssetDir    string
	ProfileBase string
	FaucetURL   string
	SupportURL  string
}

// Migrator drives the upload pipeline: wallet connect, balance check,
// identity creation, media upload, batched publishing. One run at a time;
// every failure is terminal for the run and surfaced on the progress log.
type Migrator struct {
	bridge    wallet.Bridge
	ledger    ledger.Client
	uploader  storage.Uploader
	publisher broker.Publisher
	loader    ExportLoader
	preparer  *Preparer
	opts      MigratorOptions

	mu      sync.Mutex
	running bool
	session *Session
}

// NewMigrator wires the pipeline. bridge may be nil (no wallet present);
// uploader may be nil when local mode is never used; publisher may be nil to
// skip external progress streaming.
func NewMigrator(bridge wallet.Bridge, ledgerClient ledger.Client, uploader storage.Uploader,
	publisher broker.Publisher, loader ExportLoader, preparer *Preparer, opts MigratorOptions,
) *Migrator {
	return &Migrator{
		bridge:    bridge,
		ledger:    ledgerClient,
		uploader:  uploader,
		publisher: publisher,
		loader:    loader,
		preparer:  preparer,
		opts:      opts,
	}
}

// Prepared returns the normalized moments and account for display.
func (m *Migrator) Prepared(useLocal bool, order Order) ([]model.Moment, model.Account, error) {
	export, err := m.loader.Load()
	if err != nil {
		return nil, model.Account{}, err
	}

	moments, account := m.preparer.Prepare(export, useLocal, order)

	return moments, account, nil
}

// Status reports the current (or last) run's progress.
func (m *Migrator) Status() dto.RunStatus {
	m.mu.Lock()
	session, running := m.session, m.running
	m.mu.Unlock()

	if session == nil {
		return dto.RunStatus{Events: []entity.Event{}}
	}

	return dto.RunStatus{
		Running: running,
		Events:  session.Events(),
		Report:  session.Report(),
	}
}

// acquire takes the single-run guard and opens a fresh session.
func (m *Migrator) acquire() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil, ErrRunInProgress
	}
	m.running = true
	m.session = newSession()

	return m.session, nil
}

func (m *Migrator) release() {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
}

// Run executes one migration end to end. A second call while a run is in
// flight returns ErrRunInProgress.
func (m *Migrator) Run(ctx context.Context, useLocal bool) (*entity.RunReport, error) {
	session, err := m.acquire()
	if err != nil {
		return nil, err
	}
	defer m.release()

	report, err := m.run(ctx, session, useLocal)
	if err != nil {
		return nil, err
	}
	session.finish(report)

	return report, nil
}

// Start launches a run in the background. The in-progress rejection is
// synchronous; everything else is reported through the session log.
func (m *Migrator) Start(ctx context.Context, useLocal bool) (string, error) {
	session, err := m.acquire()
	if err != nil {
		return "", err
	}

	go func() {
		defer m.release()
		report, err := m.run(ctx, session, useLocal)
		if err != nil {
			logger.Error("migration run failed", "run_id", session.RunID(), "err", err)

			return
		}
		session.finish(report)
	}()

	return session.RunID(), nil
}

func (m *Migrator) run(ctx context.Context, session *Session, useLocal bool) (*entity.RunReport, error) {
	if m.bridge == nil {
		m.emit(ctx, session, entity.StageConnect, entity.StatusFailed,
			"no wallet found, install and unlock a wallet first")

		return nil, ErrNoWallet
	}
	if useLocal && m.uploader == nil {
		m.emit(ctx, session, entity.StageConnect, entity.StatusFailed,
			"local mode needs a durable storage uploader, none is configured")

		return nil, ErrNoUploader
	}

	m.emit(ctx, session, entity.StageConnect, entity.StatusStarted, "connecting wallet")
	owner, err := m.bridge.RequestAccounts(ctx)
	if err != nil {
		return nil, m.fail(ctx, session, entity.StageConnect, "request accounts", err)
	}
	if err := m.bridge.AddNetwork(ctx, m.opts.Network); err != nil {
		return nil, m.fail(ctx, session, entity.StageConnect, "add network", err)
	}
	if err := m.bridge.SwitchNetwork(ctx, m.opts.Network.ChainIDHex()); err != nil {
		return nil, m.fail(ctx, session, entity.StageConnect, "switch network", err)
	}
	m.emit(ctx, session, entity.StageConnect, entity.StatusSucceeded,
		fmt.Sprintf("wallet connected (address: %s)", owner))

	export, err := m.loader.Load()
	if err != nil {
		return nil, m.fail(ctx, session, entity.StageBalance, "load export", err)
	}
	moments, account := m.preparer.Prepare(export, useLocal, OrderAsc)

	plan, err := m.checkBalance(ctx, session, owner, moments, useLocal)
	if err != nil {
		return nil, err
	}

	handle := Handle(account.ID)
	characterID, err := m.createIdentity(ctx, session, owner, handle, account, useLocal)
	if err != nil {
		return nil, err
	}

	if useLocal {
		if err := m.uploadMedia(ctx, session, moments); err != nil {
			return nil, err
		}
	}

	published, err := m.publish(ctx, session, characterID, moments, useLocal, plan)
	if err != nil {
		return nil, err
	}

	report := &entity.RunReport{
		RunID:       session.RunID(),
		Owner:       owner,
		Handle:      handle,
		CharacterID: characterID,
		Published:   published,
		ProfileURL:  m.opts.ProfileBase + "/u/" + handle,
	}
	m.emit(ctx, session, entity.StageComplete, entity.StatusSucceeded,
		"all notes published, view the feed at "+report.ProfileURL)

	return report, nil
}

func (m *Migrator) checkBalance(ctx context.Context, session *Session, owner string,
	moments []model.Moment, useLocal bool,
) (entity.BatchPlan, error) {
	m.emit(ctx, session, entity.StageBalance, entity.StatusStarted, "checking fee balance")

	balance, err := m.ledger.GetBalance(ctx, owner)
	if err != nil {
		return entity.BatchPlan{}, m.fail(ctx, session, entity.StageBalance, "get balance", err)
	}

	// Rough notes with a placeholder identity are close enough for sizing.
	rough := BuildNotes(estimateCharacterID, moments, useLocal, map[string]string{})
	plan, err := PlanBatches(rough)
	if err != nil {
		return entity.BatchPlan{}, m.fail(ctx, session, entity.StageBalance, "plan batches", err)
	}

	fee := EstimateFee(plan)
	if !fee.Covers(balance) {
		m.emit(ctx, session, entity.StageBalance, entity.StatusFailed, fmt.Sprintf(
			"balance %s %s below estimated fee %s %s, top up at %s or ask for help in %s",
			utils.FormatEther(balance), m.opts.Network.NativeCurrency.Symbol,
			utils.FormatEther(fee.Wei), m.opts.Network.NativeCurrency.Symbol,
			m.opts.FaucetURL, m.opts.SupportURL))

		return entity.BatchPlan{}, ErrInsufficientBalance
	}

	m.emit(ctx, session, entity.StageBalance, entity.StatusSucceeded, fmt.Sprintf(
		"balance %s %s covers estimated fee %s %s",
		utils.FormatEther(balance), m.opts.Network.NativeCurrency.Symbol,
		utils.FormatEther(fee.Wei), m.opts.Network.NativeCurrency.Symbol))

	return plan, nil
}

func (m *Migrator) createIdentity(ctx context.Context, session *Session, owner, handle string,
	account model.Account, useLocal bool,
) (int64, error) {
	avatarURL, bannerURL := account.Avatar, account.Banner
	if useLocal {
		var err error
		if account.DisplayAvatar != "" {
			if avatarURL, err = m.uploadAsset(ctx, session, account.DisplayAvatar); err != nil {
				return 0, m.fail(ctx, session, entity.StageIdentity, "upload avatar", err)
			}
		}
		if account.DisplayBanner != "" {
			if bannerURL, err = m.uploadAsset(ctx, session, account.DisplayBanner); err != nil {
				return 0, m.fail(ctx, session, entity.StageIdentity, "upload banner", err)
			}
		}
	}

	profile := model.CharacterProfile{
		Owner:  owner,
		Handle: handle,
		Metadata: model.CharacterMetadata{
			Name: account.Nickname,
		},
	}
	if account.Banner != "" {
		profile.Metadata.Banners = []model.Attachment{{
			Address:  bannerURL,
			MimeType: utils.GetMimeTypeFromReference(account.Banner),
		}}
	}
	if account.Avatar != "" {
		profile.Metadata.Avatars = []string{avatarURL}
	}
	if account.Bio != "" {
		profile.Metadata.Bio = account.Bio
	}

	m.emit(ctx, session, entity.StageIdentity, entity.StatusStarted, "creating character "+handle)

	characterID, err := m.ledger.CreateCharacter(ctx, profile)
	if err != nil {
		return 0, m.fail(ctx, session, entity.StageIdentity, "create character", err)
	}

	m.emit(ctx, session, entity.StageIdentity, entity.StatusSucceeded,
		fmt.Sprintf("character created: #%d", characterID))

	return characterID, nil
}

// uploadMedia re-hosts every distinct local image on durable storage. The
// uploads fan out with no ordering between them; the stage is a barrier and
// the first failure aborts the whole run. Handles already resolved stay in
// the session for inspection.
func (m *Migrator) uploadMedia(ctx context.Context, session *Session, moments []model.Moment) error {
	handles := make(map[string]struct{})
	for _, moment := range moments {
		for _, img := range moment.DisplayImages {
			handles[img] = struct{}{}
		}
	}
	if len(handles) == 0 {
		return nil
	}

	m.emit(ctx, session, entity.StageMedia, entity.StatusStarted,
		fmt.Sprintf("uploading %d images to durable storage", len(handles)))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for handle := range handles {
		wg.Add(1)
		go func(handle string) {
			defer wg.Done()
			if _, err := m.uploadAsset(ctx, session, handle); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(handle)
	}
	wg.Wait()

	if firstErr != nil {
		return m.fail(ctx, session, entity.StageMedia, "upload media", firstErr)
	}

	m.emit(ctx, session, entity.StageMedia, entity.StatusSucceeded, "all images uploaded")

	return nil
}

func (m *Migrator) uploadAsset(ctx context.Context, session *Session, handle string) (string, error) {
	data, err := os.ReadFile(filepath.Join(m.opts.AssetDir, filepath.FromSlash(handle)))
	if err != nil {
		return "", fmt.Errorf("read asset %s: %w", handle, err)
	}

	address, err := m.uploader.Upload(ctx, bytes.NewReader(data), int64(len(data)), path.Base(handle))
	if err != nil {
		return "", fmt.Errorf("upload asset %s: %w", handle, err)
	}
	session.resolve(handle, address)

	return address, nil
}

// publish submits the notes in chronological batches, strictly sequentially.
// A failed batch halts the run; re-running re-attempts every batch, so the
// publish guarantee is at-least-once.
func (m *Migrator) publish(ctx context.Context, session *Session, characterID int64,
	moments []model.Moment, useLocal bool, plan entity.BatchPlan,
) (int, error) {
	notes := BuildNotes(characterID, moments, useLocal, session.Resolved())

	m.emit(ctx, session, entity.StagePublish, entity.StatusStarted, fmt.Sprintf(
		"%d notes to publish in %d batches of up to %d", len(notes), plan.Count, plan.Size))

	for i := 0; i < len(notes); i += plan.Size {
		end := min(i+plan.Size, len(notes))
		if err := m.ledger.PostNotes(ctx, notes[i:end]); err != nil {
			return i, m.fail(ctx, session, entity.StagePublish,
				fmt.Sprintf("publish batch %d", i/plan.Size+1), err)
		}
		m.emit(ctx, session, entity.StagePublish, entity.StatusProgress,
			fmt.Sprintf("published %d of %d notes", end, len(notes)))
	}

	return len(notes), nil
}

func (m *Migrator) fail(ctx context.Context, session *Session, stage entity.Stage, op string, err error) error {
	m.emit(ctx, session, stage, entity.StatusFailed, op+": "+err.Error())

	return fmt.Errorf("%s: %w", op, err)
}

func (m *Migrator) emit(ctx context.Context, session *Session, stage entity.Stage,
	status entity.Status, detail string,
) {
	event := entity.Event{
		RunID:  session.RunID(),
		Stage:  stage,
		Status: status,
		Detail: detail,
	}
	session.record(event)

	if status == entity.StatusFailed {
		logger.Error("migration "+string(stage), "detail", detail)
	} else {
		logger.Info("migration "+string(stage), "status", string(status), "detail", detail)
	}

	if m.publisher != nil {
		line := fmt.Sprintf("[%s] %s %s: %s", event.RunID, event.Stage, event.Status, event.Detail)
		if err := m.publisher.Publish(ctx, line); err != nil {
			logger.Error("progress publish failed", "err", err)
		}
	}
}
