// Copyright (c) 2026 Clipstream. All rights reserved.

package users_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipstream/api/internal/media"
	"github.com/clipstream/api/internal/platform/apperr"
	"github.com/clipstream/api/internal/users"
)

// # Test Doubles

// memoryRepo is an in-memory [users.UserRepository] that counts calls so
// tests can assert which workflow steps ran.
type memoryRepo struct {
	byID          map[string]*users.User
	identityCalls int
	createCalls   int
	createErr     error
	findByIDErr   error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: make(map[string]*users.User)}
}

func (repo *memoryRepo) Create(_ context.Context, user *users.User) error {
	repo.createCalls++
	if repo.createErr != nil {
		return repo.createErr
	}
	stored := *user
	repo.byID[user.ID] = &stored
	return nil
}

func (repo *memoryRepo) FindByID(_ context.Context, id string) (*users.User, error) {
	if repo.findByIDErr != nil {
		return nil, repo.findByIDErr
	}
	stored, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	loaded := *stored
	return &loaded, nil
}

func (repo *memoryRepo) FindByIdentity(_ context.Context, email, username string) (*users.User, error) {
	repo.identityCalls++
	for _, stored := range repo.byID {
		if stored.Email == email || stored.Username == username {
			loaded := *stored
			return &loaded, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryRepo) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	return repo.FindByIdentity(ctx, email, "")
}

func (repo *memoryRepo) FindByUsername(ctx context.Context, username string) (*users.User, error) {
	return repo.FindByIdentity(ctx, "", username)
}

func (repo *memoryRepo) Update(_ context.Context, user *users.User) error {
	stored := *user
	repo.byID[user.ID] = &stored
	return nil
}

func (repo *memoryRepo) UpdateRefreshToken(_ context.Context, userID, refreshToken string) error {
	if stored, ok := repo.byID[userID]; ok {
		stored.RefreshToken = refreshToken
	}
	return nil
}

// fakeGuard is a [users.SignupGuard] that can simulate a contended identity.
type fakeGuard struct {
	deny     bool
	acquires int
	releases int
}

func (guard *fakeGuard) Acquire(_ context.Context, keys ...string) (bool, error) {
	guard.acquires++
	return !guard.deny, nil
}

func (guard *fakeGuard) Release(_ context.Context, keys ...string) error {
	guard.releases++
	return nil
}

// fakeUploader maps local paths to canned results; unknown paths yield nil,
// mirroring the real uploader's "could not obtain an asset" contract.
type fakeUploader struct {
	results map[string]*media.Result
	calls   []string
}

func (uploader *fakeUploader) Upload(_ context.Context, localPath string) *media.Result {
	uploader.calls = append(uploader.calls, localPath)
	return uploader.results[localPath]
}

// # Test Harness

type serviceFixture struct {
	service  *users.Service
	repo     *memoryRepo
	guard    *fakeGuard
	uploader *fakeUploader
}

func newServiceFixture() *serviceFixture {
	repo := newMemoryRepo()
	guard := &fakeGuard{}
	uploader := &fakeUploader{results: make(map[string]*media.Result)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &serviceFixture{
		service:  users.NewService(repo, guard, uploader, logger),
		repo:     repo,
		guard:    guard,
		uploader: uploader,
	}
}

func validInput() users.RegisterInput {
	return users.RegisterInput{
		Email:      "a@x.com",
		FullName:   "A B",
		Username:   "AB",
		Password:   "secret",
		AvatarPath: "/tmp/scratch/avatar.png",
	}
}

func (fixture *serviceFixture) allowAvatar() {
	fixture.uploader.results["/tmp/scratch/avatar.png"] = &media.Result{
		URL: "https://cdn.clipstream.app/uploads/avatar.png",
		Key: "uploads/avatar.png",
	}
}

// # Workflow Tests

/*
TestRegister_MissingFields verifies blank required fields fail with a
ValidationError before any storage or upload call.
*/
func TestRegister_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*users.RegisterInput)
	}{
		{"missing_email", func(input *users.RegisterInput) { input.Email = "" }},
		{"missing_fullname", func(input *users.RegisterInput) { input.FullName = "" }},
		{"missing_username", func(input *users.RegisterInput) { input.Username = "" }},
		{"missing_password", func(input *users.RegisterInput) { input.Password = "" }},
		{"whitespace_email", func(input *users.RegisterInput) { input.Email = "   " }},
		{"whitespace_username", func(input *users.RegisterInput) { input.Username = " \t " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newServiceFixture()
			fixture.allowAvatar()

			input := validInput()
			tt.mutate(&input)

			created, err := fixture.service.Register(context.Background(), input)

			require.Error(t, err)
			assert.Nil(t, created)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			// Short-circuit: nothing downstream ran
			assert.Zero(t, fixture.repo.identityCalls)
			assert.Zero(t, fixture.repo.createCalls)
			assert.Empty(t, fixture.uploader.calls)
		})
	}
}

/*
TestRegister_DuplicateIdentity verifies an existing email or username fails
with a ConflictError and performs no upload or create.
*/
func TestRegister_DuplicateIdentity(t *testing.T) {
	fixture := newServiceFixture()
	fixture.allowAvatar()
	fixture.repo.byID["existing"] = &users.User{
		ID:       "existing",
		Username: "ab",
		Email:    "a@x.com",
	}

	created, err := fixture.service.Register(context.Background(), validInput())

	require.Error(t, err)
	assert.Nil(t, created)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, 409, ae.HTTPStatus)

	assert.Empty(t, fixture.uploader.calls)
	assert.Zero(t, fixture.repo.createCalls)
}

/*
TestRegister_MissingAvatar verifies a registration without a staged avatar
file fails with a ValidationError.
*/
func TestRegister_MissingAvatar(t *testing.T) {
	fixture := newServiceFixture()

	input := validInput()
	input.AvatarPath = ""

	created, err := fixture.service.Register(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, created)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	require.Len(t, ae.Errors, 1)
	assert.Equal(t, "avatar", ae.Errors[0].Field)

	assert.Empty(t, fixture.uploader.calls)
	assert.Zero(t, fixture.repo.createCalls)
}

/*
TestRegister_AvatarUploadFails verifies a failed required upload yields an
UploadError and no record is created.
*/
func TestRegister_AvatarUploadFails(t *testing.T) {
	fixture := newServiceFixture()
	// No result configured for the avatar path: the uploader returns nil.

	created, err := fixture.service.Register(context.Background(), validInput())

	require.Error(t, err)
	assert.Nil(t, created)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPLOAD_FAILED", ae.Code)
	assert.Equal(t, 500, ae.HTTPStatus)

	assert.Zero(t, fixture.repo.createCalls)
}

/*
TestRegister_CoverImageDegrades verifies a failed optional cover upload
still creates the record with an empty cover value.
*/
func TestRegister_CoverImageDegrades(t *testing.T) {
	fixture := newServiceFixture()
	fixture.allowAvatar()

	input := validInput()
	input.CoverImagePath = "/tmp/scratch/cover.png"
	// No result configured for the cover path: that upload fails.

	created, err := fixture.service.Register(context.Background(), input)

	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "https://cdn.clipstream.app/uploads/avatar.png", created.AvatarURL)
	assert.Empty(t, created.CoverImageURL)
	assert.Equal(t, 1, fixture.repo.createCalls)

	// Both uploads were attempted, avatar first
	require.Len(t, fixture.uploader.calls, 2)
	assert.Equal(t, "/tmp/scratch/avatar.png", fixture.uploader.calls[0])
	assert.Equal(t, "/tmp/scratch/cover.png", fixture.uploader.calls[1])
}

/*
TestRegister_Success verifies the happy path: normalization, upload wiring,
persistence, and the confirmation re-read.
*/
func TestRegister_Success(t *testing.T) {
	fixture := newServiceFixture()
	fixture.allowAvatar()

	created, err := fixture.service.Register(context.Background(), validInput())

	require.NoError(t, err)
	require.NotNil(t, created)

	// Identity keys are stored normalized
	assert.Equal(t, "ab", created.Username)
	assert.Equal(t, "a@x.com", created.Email)
	assert.Equal(t, "A B", created.FullName)

	// Avatar equals the remote URL returned by the upload stage
	assert.Equal(t, "https://cdn.clipstream.app/uploads/avatar.png", created.AvatarURL)
	assert.Empty(t, created.CoverImageURL)

	// Password was hashed by the entity write-path hook
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "secret", created.PasswordHash)
	assert.True(t, created.CheckPassword("secret"))

	// The returned entity is the confirmation re-read, not the local copy
	stored, ok := fixture.repo.byID[created.ID]
	require.True(t, ok)
	assert.Equal(t, stored.Username, created.Username)

	// Guard lifecycle: acquired once, released once
	assert.Equal(t, 1, fixture.guard.acquires)
	assert.Equal(t, 1, fixture.guard.releases)
}

/*
TestRegister_GuardContention verifies a concurrent in-flight registration
for the same identity is rejected as a conflict.
*/
func TestRegister_GuardContention(t *testing.T) {
	fixture := newServiceFixture()
	fixture.allowAvatar()
	fixture.guard.deny = true

	created, err := fixture.service.Register(context.Background(), validInput())

	require.Error(t, err)
	assert.Nil(t, created)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	assert.Zero(t, fixture.repo.identityCalls)
	assert.Empty(t, fixture.uploader.calls)
}

/*
TestRegister_PostCreateReadFails verifies a failed confirmation read is
reported as an internal consistency failure.
*/
func TestRegister_PostCreateReadFails(t *testing.T) {
	fixture := newServiceFixture()
	fixture.allowAvatar()
	fixture.repo.findByIDErr = apperr.NotFound("User")

	created, err := fixture.service.Register(context.Background(), validInput())

	require.Error(t, err)
	assert.Nil(t, created)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
	assert.Equal(t, 500, ae.HTTPStatus)

	// The write itself happened before the re-read failed
	assert.Equal(t, 1, fixture.repo.createCalls)
}

/*
TestRegister_IdenticalInputTwice verifies the second identical registration
returns a conflict and creates no second record.
*/
func TestRegister_IdenticalInputTwice(t *testing.T) {
	fixture := newServiceFixture()
	fixture.allowAvatar()

	first, err := fixture.service.Register(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := fixture.service.Register(context.Background(), validInput())

	require.Error(t, err)
	assert.Nil(t, second)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	assert.Equal(t, 1, fixture.repo.createCalls)
	assert.Len(t, fixture.repo.byID, 1)
}
