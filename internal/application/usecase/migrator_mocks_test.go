package usecase

import (
	"context"
	"errors"
	"io"
	"math/big"
	"sync"

	"momentchain/internal/domain/model"
	"momentchain/internal/domain/repository/wallet"
)

type mockBridge struct {
	accounts    string
	accountsErr error
	addErr      error
	switchErr   error

	// block, when set, stalls RequestAccounts until the channel closes.
	block chan struct{}

	addedNetworks  []wallet.Network
	switchedChains []string
}

func (b *mockBridge) RequestAccounts(_ context.Context) (string, error) {
	if b.block != nil {
		<-b.block
	}
	if b.accountsErr != nil {
		return "", b.accountsErr
	}

	return b.accounts, nil
}

func (b *mockBridge) AddNetwork(_ context.Context, network wallet.Network) error {
	b.addedNetworks = append(b.addedNetworks, network)

	return b.addErr
}

func (b *mockBridge) SwitchNetwork(_ context.Context, chainIDHex string) error {
	b.switchedChains = append(b.switchedChains, chainIDHex)

	return b.switchErr
}

type mockLedger struct {
	balance     *big.Int
	balanceErr  error
	characterID int64
	createErr   error
	postErr     error

	mu          sync.Mutex
	createCalls int
	lastProfile model.CharacterProfile
	postCalls   [][]model.Note
}

func (l *mockLedger) GetBalance(_ context.Context, _ string) (*big.Int, error) {
	if l.balanceErr != nil {
		return nil, l.balanceErr
	}

	return l.balance, nil
}

func (l *mockLedger) CreateCharacter(_ context.Context, profile model.CharacterProfile) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.createCalls++
	l.lastProfile = profile

	if l.createErr != nil {
		return 0, l.createErr
	}

	return l.characterID, nil
}

func (l *mockLedger) PostNotes(_ context.Context, notes []model.Note) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.postErr != nil {
		return l.postErr
	}

	batch := make([]model.Note, len(notes))
	copy(batch, notes)
	l.postCalls = append(l.postCalls, batch)

	return nil
}

type mockUploader struct {
	mu      sync.Mutex
	failFor string // object name that fails
	uploads []string
}

func (u *mockUploader) Upload(_ context.Context, body io.Reader, _ int64, name string) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if name == u.failFor {
		return "", errors.New("storage unavailable")
	}
	u.uploads = append(u.uploads, name)

	return "ipfs://" + name, nil
}

type mockLoader struct {
	export *model.Export
	err    error
}

func (l *mockLoader) Load() (*model.Export, error) {
	return l.export, l.err
}

type mockPublisher struct {
	mu    sync.Mutex
	lines []string
}

func (p *mockPublisher) Publish(_ context.Context, line string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lines = append(p.lines, line)

	return nil
}

func (p *mockPublisher) Lines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.lines))
	copy(out, p.lines)

	return out
}
