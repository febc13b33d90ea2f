package account

import (
	c "accounts/internal/core/domain/common"
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakePasswordGenerator struct {
	Password RawPassword
}

func NewFakePasswordGenerator(password string) *FakePasswordGenerator {
	return &FakePasswordGenerator{Password: RawPassword(password)}
}

func (g *FakePasswordGenerator) GeneratePassword() RawPassword {
	return g.Password
}

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateToken() SessionToken {
	return SessionToken(g.Token)
}

// FakeConfirmationTokenGenerator hands out Tokens in order, cycling when exhausted.
type FakeConfirmationTokenGenerator struct {
	Tokens []ConfirmationToken
	next   int
	lock   sync.Mutex
}

func NewFakeConfirmationTokenGenerator(tokens ...string) *FakeConfirmationTokenGenerator {
	g := &FakeConfirmationTokenGenerator{}
	for _, t := range tokens {
		g.Tokens = append(g.Tokens, ConfirmationToken(t))
	}
	return g
}

func (g *FakeConfirmationTokenGenerator) GenerateConfirmationToken() ConfirmationToken {
	g.lock.Lock()
	defer g.lock.Unlock()
	token := g.Tokens[g.next%len(g.Tokens)]
	g.next++
	return token
}

type FakeAccountRepository struct {
	Accounts    []Account
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeAccountRepository() *FakeAccountRepository {
	return &FakeAccountRepository{Accounts: make([]Account, 0, 10)}
}

func (r *FakeAccountRepository) Create(ctx context.Context, input CreateAccountInput) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not create account %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Accounts {
		if existing.Username == input.Username {
			return a, ErrUsernameAlreadyExists
		}
		if existing.Email == input.Email {
			return a, ErrEmailAlreadyExists
		}
	}
	a = Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
		UpdatedAt:    input.CreatedAt,
	}
	r.Accounts = append(r.Accounts, a)
	return a, nil
}

func (r *FakeAccountRepository) GetByUsername(ctx context.Context, username Username) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not get account %s", username)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, a := range r.Accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return a, ErrAccountDoesNotExist
}

func (r *FakeAccountRepository) GetByUsernameForUpdate(ctx context.Context, username Username) (Account, error) {
	return r.GetByUsername(ctx, username)
}

func (r *FakeAccountRepository) Update(ctx context.Context, input UpdateAccountInput) (a Account, err error) {
	if r.ReturnError {
		return a, fmt.Errorf("could not update account %s", input.Username)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if input.Email.IsPresent {
		for _, existing := range r.Accounts {
			if existing.Username != input.Username && existing.Email == input.Email.Value {
				return a, ErrEmailAlreadyExists
			}
		}
	}
	for ix, a := range r.Accounts {
		if a.Username == input.Username {
			if input.Email.IsPresent {
				r.Accounts[ix].Email = input.Email.Value
			}
			if input.PasswordHash.IsPresent {
				r.Accounts[ix].PasswordHash = input.PasswordHash.Value
			}
			r.Accounts[ix].UpdatedAt = input.UpdatedAt
			return r.Accounts[ix], nil
		}
	}
	return a, ErrAccountDoesNotExist
}

func (r *FakeAccountRepository) SetPassword(
	ctx context.Context,
	username Username,
	password PasswordHash,
	at time.Time,
) error {
	_, err := r.Update(ctx, UpdateAccountInput{
		Username:     username,
		PasswordHash: c.NewOptional(password, true),
		UpdatedAt:    at,
	})
	return err
}

func (r *FakeAccountRepository) Delete(ctx context.Context, username Username) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete account %s", username)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, a := range r.Accounts {
		if a.Username == username {
			r.Accounts = append(r.Accounts[:ix], r.Accounts[ix+1:]...)
			return nil
		}
	}
	return ErrAccountDoesNotExist
}

type FakeSessionRepository struct {
	UsernameByToken   map[SessionToken]Username
	AccountRepository AccountRepository
	ReturnError       bool
	lock              sync.Mutex
}

func NewFakeSessionRepository(accountRepository AccountRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		UsernameByToken:   make(map[SessionToken]Username),
		AccountRepository: accountRepository,
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create session for %s", input.Username)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.UsernameByToken[input.Token] = input.Username
	return nil
}

func (r *FakeSessionRepository) GetAccountByToken(ctx context.Context, token SessionToken) (a Account, err error) {
	r.lock.Lock()
	username, ok := r.UsernameByToken[token]
	r.lock.Unlock()
	if !ok {
		return a, ErrSessionDoesNotExist
	}
	a, err = r.AccountRepository.GetByUsername(ctx, username)
	if errors.Is(err, ErrAccountDoesNotExist) {
		return a, ErrSessionDoesNotExist
	}
	return a, err
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (Username, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	username, ok := r.UsernameByToken[token]
	if !ok {
		return "", ErrSessionDoesNotExist
	}
	delete(r.UsernameByToken, token)
	return username, nil
}

type FakeConfirmationTokenLedger struct {
	Records     map[Username]ConfirmationTokenRecord
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeConfirmationTokenLedger() *FakeConfirmationTokenLedger {
	return &FakeConfirmationTokenLedger{Records: make(map[Username]ConfirmationTokenRecord)}
}

func (l *FakeConfirmationTokenLedger) Issue(ctx context.Context, record ConfirmationTokenRecord) error {
	if l.ReturnError {
		return fmt.Errorf("could not issue confirmation token for %s", record.Username)
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	l.Records[record.Username] = record
	return nil
}

func (l *FakeConfirmationTokenLedger) Validate(
	ctx context.Context,
	username Username,
	token ConfirmationToken,
	now time.Time,
) (bool, error) {
	if l.ReturnError {
		return false, fmt.Errorf("could not validate confirmation token for %s", username)
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	record, ok := l.Records[username]
	return ok && record.Accepts(token, now), nil
}

func (l *FakeConfirmationTokenLedger) Consume(
	ctx context.Context,
	username Username,
	token ConfirmationToken,
	now time.Time,
) (bool, error) {
	if l.ReturnError {
		return false, fmt.Errorf("could not consume confirmation token for %s", username)
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	record, ok := l.Records[username]
	if !ok || !record.Accepts(token, now) {
		return false, nil
	}
	delete(l.Records, username)
	return true, nil
}

func (l *FakeConfirmationTokenLedger) Delete(ctx context.Context, username Username) error {
	l.lock.Lock()
	defer l.lock.Unlock()
	delete(l.Records, username)
	return nil
}

type FakeConfirmationTokenSender struct {
	Sent        []ConfirmationTokenNotification
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeConfirmationTokenSender() *FakeConfirmationTokenSender {
	return &FakeConfirmationTokenSender{}
}

func (s *FakeConfirmationTokenSender) SendConfirmationToken(
	ctx context.Context,
	notification ConfirmationTokenNotification,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send confirmation token to %s", notification.Email)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, notification)
	return nil
}

func (s *FakeConfirmationTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakeConfirmationTokenSender) LastSent() ConfirmationTokenNotification {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}
