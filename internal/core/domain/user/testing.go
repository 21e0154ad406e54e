package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"
	c "ums/internal/core/domain/common"
)

type FakeVerificationLinkSender struct {
	Sent        []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeVerificationLinkSender() *FakeVerificationLinkSender {
	return &FakeVerificationLinkSender{}
}

func (s *FakeVerificationLinkSender) SendVerificationLink(ctx context.Context, user User) error {
	if s.ReturnError {
		return fmt.Errorf("could not send verification link to %s", user.Email)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, user)
	return nil
}

func (s *FakeVerificationLinkSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakeVerificationLinkSender) LastSentTo() User {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakePasswordResetLinkSender struct {
	Sent        []PasswordResetToken
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetLinkSender() *FakePasswordResetLinkSender {
	return &FakePasswordResetLinkSender{}
}

func (s *FakePasswordResetLinkSender) SendPasswordResetLink(
	ctx context.Context,
	user User,
	token PasswordResetToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset link")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, user)
	return nil
}

type FakePasswordResetTokenGenerator struct {
	Tokens      []PasswordResetToken
	ReturnError bool
	calls       int
}

// NewFakePasswordResetTokenGenerator returns the given tokens in order, repeating the last one.
func NewFakePasswordResetTokenGenerator(tokens ...string) *FakePasswordResetTokenGenerator {
	g := &FakePasswordResetTokenGenerator{}
	for _, t := range tokens {
		g.Tokens = append(g.Tokens, PasswordResetToken(t))
	}
	return g
}

func (g *FakePasswordResetTokenGenerator) GeneratePasswordResetToken() (PasswordResetToken, error) {
	if g.ReturnError || len(g.Tokens) == 0 {
		return "", fmt.Errorf("could not generate password reset token")
	}
	ix := g.calls
	if ix >= len(g.Tokens) {
		ix = len(g.Tokens) - 1
	}
	g.calls++
	return g.Tokens[ix], nil
}

type FakePasswordHasher struct {
	ReturnError bool
}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	if h.ReturnError {
		return "", fmt.Errorf("could not hash password")
	}
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	h_ := md5.New()
	io.WriteString(h_, string(password))
	return PasswordHash(fmt.Sprintf("%x", h_.Sum(nil))) == hash
}

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateSessionToken() SessionToken {
	return SessionToken(g.Token)
}

type FakeImageStorage struct {
	Saved       map[ImageRef]Image
	Deleted     []ImageRef
	ReturnError bool
	counter     int
	lock        sync.Mutex
}

func NewFakeImageStorage() *FakeImageStorage {
	return &FakeImageStorage{Saved: make(map[ImageRef]Image)}
}

func (s *FakeImageStorage) Save(ctx context.Context, image Image) (ImageRef, error) {
	if s.ReturnError {
		return "", fmt.Errorf("could not save image %s", image.Filename)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.counter++
	ref := ImageRef(fmt.Sprintf("%d-%s", s.counter, image.Filename))
	s.Saved[ref] = image
	return ref, nil
}

func (s *FakeImageStorage) Delete(ctx context.Context, ref ImageRef) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.Saved, ref)
	s.Deleted = append(s.Deleted, ref)
	return nil
}

type FakeEventPublisher struct {
	Published   []Event
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeEventPublisher() *FakeEventPublisher {
	return &FakeEventPublisher{}
}

func (p *FakeEventPublisher) Publish(ctx context.Context, event Event) error {
	if p.ReturnError {
		return fmt.Errorf("could not publish event %s", event.Type)
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, event)
	return nil
}

func (p *FakeEventPublisher) Types() []EventType {
	p.lock.Lock()
	defer p.lock.Unlock()
	types := make([]EventType, 0, len(p.Published))
	for _, e := range p.Published {
		types = append(types, e.Type)
	}
	return types
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	counter     int
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %s", input.Email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == input.Email {
			return User{}, ErrEmailAlreadyExists
		}
	}
	r.counter++
	u = User{
		ID:           ID(fmt.Sprintf("00000000-0000-4000-8000-%012d", r.counter)),
		Name:         input.Name,
		Email:        input.Email,
		Mobile:       input.Mobile,
		Image:        input.Image,
		Role:         input.Role,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %s", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByPasswordResetToken(ctx context.Context, token PasswordResetToken) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.PasswordResetToken.IsPresent && u.PasswordResetToken.Value == token {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Verify(ctx context.Context, id ID, at time.Time) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not verify user %s", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			if !u.VerifiedAt.IsPresent {
				r.Users[ix].VerifiedAt = c.Some(at)
			}
			return r.Users[ix], nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPasswordResetToken(
	ctx context.Context,
	id ID,
	token PasswordResetToken,
	at time.Time,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password reset token for user %s", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordResetToken = c.Some(token)
			r.Users[ix].PasswordResetTokenIssuedAt = c.Some(at)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password for user %s", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			r.Users[ix].PasswordResetToken = c.None[PasswordResetToken]()
			r.Users[ix].PasswordResetTokenIssuedAt = c.None[time.Time]()
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) ResetPassword(
	ctx context.Context,
	id ID,
	token PasswordResetToken,
	password PasswordHash,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not reset password for user %s", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id && token != "" && u.PasswordResetToken.IsPresent && u.PasswordResetToken.Value == token {
			r.Users[ix].PasswordHash = password
			r.Users[ix].PasswordResetToken = c.None[PasswordResetToken]()
			r.Users[ix].PasswordResetTokenIssuedAt = c.None[time.Time]()
			return nil
		}
	}
	return ErrInvalidPasswordResetToken
}

func (r *FakeUserRepository) UpdateProfile(ctx context.Context, input UpdateProfileInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not update user %s", input.ID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, other := range r.Users {
		if other.ID != input.ID && other.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
	}
	for ix, u := range r.Users {
		if u.ID == input.ID {
			r.Users[ix].Name = input.Name
			r.Users[ix].Email = input.Email
			r.Users[ix].Mobile = input.Mobile
			if input.Image.IsPresent {
				r.Users[ix].Image = input.Image.Value
			}
			return r.Users[ix], nil
		}
	}
	return u, ErrUserDoesNotExist
}

type FakeSessionRepository struct {
	UserIdByToken  map[SessionToken]ID
	UserRepository UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeSessionRepository(userRepository UserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		UserIdByToken:  make(map[SessionToken]ID),
		UserRepository: userRepository,
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create session for user %s", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.UserIdByToken[input.Token] = input.UserID
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	userID, ok := r.UserIdByToken[token]
	r.lock.Unlock()
	if !ok {
		return u, ErrSessionDoesNotExist
	}
	return r.UserRepository.GetByID(ctx, userID)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (ID, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.UserIdByToken[token]
	if !ok {
		return "", ErrSessionDoesNotExist
	}
	delete(r.UserIdByToken, token)
	return userID, nil
}
