package user

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestioncom-api/internal/application/dto"
	"github.com/jhoicas/gestioncom-api/internal/domain"
	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
	"github.com/jhoicas/gestioncom-api/internal/domain/repository"
	"github.com/jhoicas/gestioncom-api/pkg/password"
)

// ─────────────────────────────────────────────
// Fakes en memoria
// ─────────────────────────────────────────────

type fakeUserRepo struct {
	users     map[int64]entity.User
	nextID    int64
	insertErr error
	removeErr error
	findErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]entity.User{}, nextID: 1}
}

func (r *fakeUserRepo) Insert(_ context.Context, u *entity.User) (int64, error) {
	if r.insertErr != nil {
		return 0, r.insertErr
	}
	id := r.nextID
	r.nextID++
	row := *u
	row.ID = id
	r.users[id] = row
	return id, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	row, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, row := range r.users {
		if row.Email == email {
			u := row
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdatePartial(_ context.Context, id int64, changes entity.UserChanges) (bool, error) {
	row, ok := r.users[id]
	if !ok {
		return false, nil
	}
	if changes.Name != nil {
		row.Name = *changes.Name
	}
	if changes.Email != nil {
		row.Email = *changes.Email
	}
	if changes.RoleID != nil {
		row.RoleID = *changes.RoleID
	}
	r.users[id] = row
	return true, nil
}

func (r *fakeUserRepo) UpdateAvatarKey(_ context.Context, id int64, key string) (bool, error) {
	row, ok := r.users[id]
	if !ok {
		return false, nil
	}
	row.AvatarKey = key
	r.users[id] = row
	return true, nil
}

func (r *fakeUserRepo) Remove(_ context.Context, id int64) (bool, error) {
	if r.removeErr != nil {
		return false, r.removeErr
	}
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *fakeUserRepo) List(_ context.Context, _ repository.ListParams) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.users))
	for _, row := range r.users {
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeAvatarStore struct {
	blobs   map[string][]byte
	types   map[string]string
	deleted []string
	putErr  error
}

func newFakeAvatarStore() *fakeAvatarStore {
	return &fakeAvatarStore{blobs: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeAvatarStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.blobs[key] = data
	s.types[key] = contentType
	return nil
}

func (s *fakeAvatarStore) Get(_ context.Context, key string) ([]byte, string, error) {
	data, ok := s.blobs[key]
	if !ok {
		return nil, "", ErrAvatarNotFound
	}
	return data, s.types[key], nil
}

func (s *fakeAvatarStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.blobs, key)
	delete(s.types, key)
	return nil
}

const testMaxUpload = 1024

func newTestUseCase() (*UseCase, *fakeUserRepo, *fakeAvatarStore) {
	repo := newFakeUserRepo()
	avatars := newFakeAvatarStore()
	return NewUseCase(repo, avatars, testMaxUpload), repo, avatars
}

func seedUser(repo *fakeUserRepo, name, email string, roleID int) int64 {
	hash, _ := password.Hash("Clave12345")
	id, _ := repo.Insert(context.Background(), &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		RoleID:       roleID,
	})
	return id
}

func validationCode(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Code
}

func intp(v int) *int { return &v }

func strp(v string) *string { return &v }

// ─────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────

func TestCreate_UsuarioValidoQuedaPersistido(t *testing.T) {
	uc, repo, _ := newTestUseCase()

	resp, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Nombre:   "  Laura Pérez  ",
		Email:    "Laura@Tienda.co",
		Password: "Clave12345",
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "Laura Pérez", resp.Nombre)
	assert.Equal(t, "laura@tienda.co", resp.Email)
	assert.Equal(t, entity.RoleUser, resp.RolID)

	row := repo.users[resp.ID]
	assert.NotEqual(t, "Clave12345", row.PasswordHash)
	assert.True(t, strings.HasPrefix(row.PasswordHash, "$argon2id$"))
}

func TestCreate_RolExplicitoAdmin(t *testing.T) {
	uc, _, _ := newTestUseCase()

	resp, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Nombre:   "Admin",
		Email:    "admin@tienda.co",
		Password: "Clave12345",
		RolID:    intp(entity.RoleAdmin),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.RolID)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _, _ := newTestUseCase()

	cases := []struct {
		name string
		in   dto.CreateUserRequest
		code string
	}{
		{
			name: "email sin arroba",
			in:   dto.CreateUserRequest{Nombre: "X", Email: "sinarroba", Password: "Clave12345"},
			code: domain.CodeEmailInvalid,
		},
		{
			name: "email demasiado largo",
			in:   dto.CreateUserRequest{Nombre: "X", Email: strings.Repeat("a", 25) + "@larga.co", Password: "Clave12345"},
			code: domain.CodeEmailInvalid,
		},
		{
			name: "nombre vacío",
			in:   dto.CreateUserRequest{Nombre: "   ", Email: "x@y.co", Password: "Clave12345"},
			code: domain.CodeNameRequired,
		},
		{
			name: "rol desconocido",
			in:   dto.CreateUserRequest{Nombre: "X", Email: "x@y.co", Password: "Clave12345", RolID: intp(9)},
			code: domain.CodeRolInvalid,
		},
		{
			name: "contraseña corta",
			in:   dto.CreateUserRequest{Nombre: "X", Email: "x@y.co", Password: "Abc123"},
			code: domain.CodePasswordTooShort,
		},
		{
			name: "contraseña sin mayúscula ni dígito",
			in:   dto.CreateUserRequest{Nombre: "X", Email: "x@y.co", Password: "solominusculas"},
			code: domain.CodePasswordWeak,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in)
			assert.Equal(t, tc.code, validationCode(t, err))
		})
	}
}

func TestCreate_EmailOcupadoEsConflicto(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)

	_, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Nombre:   "Otra Laura",
		Email:    "LAURA@tienda.co",
		Password: "Clave12345",
	})

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

// ─────────────────────────────────────────────
// Patch (tres vías)
// ─────────────────────────────────────────────

func TestPatch_CambiaNombreYRol(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	id := seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)

	resp, outcome, err := uc.Patch(context.Background(), id, dto.UpdateUserRequest{
		Nombre: strp("Laura P."),
		RolID:  intp(entity.RoleAdmin),
	})

	require.NoError(t, err)
	assert.Equal(t, PatchApplied, outcome)
	assert.Equal(t, "Laura P.", resp.Nombre)
	assert.Equal(t, entity.RoleAdmin, resp.RolID)
}

func TestPatch_SinCamposEsNoChange(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	id := seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)

	resp, outcome, err := uc.Patch(context.Background(), id, dto.UpdateUserRequest{})

	require.NoError(t, err)
	assert.Equal(t, PatchNoChange, outcome)
	assert.Nil(t, resp)
}

func TestPatch_UsuarioInexistenteEsNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, outcome, err := uc.Patch(context.Background(), 99, dto.UpdateUserRequest{Nombre: strp("X")})

	require.NoError(t, err)
	assert.Equal(t, PatchNotFound, outcome)
}

func TestPatch_EmailDeOtroUsuarioEsConflicto(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)
	id := seedUser(repo, "Mario", "mario@tienda.co", entity.RoleUser)

	_, _, err := uc.Patch(context.Background(), id, dto.UpdateUserRequest{
		Email: strp("laura@tienda.co"),
	})

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestPatch_EmailPropioNoEsConflicto(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	id := seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)

	// El mismo email en distinta capitalización se normaliza y no choca
	// consigo mismo.
	resp, outcome, err := uc.Patch(context.Background(), id, dto.UpdateUserRequest{
		Email: strp("LAURA@tienda.co"),
	})

	require.NoError(t, err)
	assert.Equal(t, PatchApplied, outcome)
	assert.Equal(t, "laura@tienda.co", resp.Email)
}

func TestPatch_Validaciones(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	id := seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)

	_, _, err := uc.Patch(context.Background(), id, dto.UpdateUserRequest{Nombre: strp("  ")})
	assert.Equal(t, domain.CodeNameRequired, validationCode(t, err))

	_, _, err = uc.Patch(context.Background(), id, dto.UpdateUserRequest{Email: strp("malo")})
	assert.Equal(t, domain.CodeEmailInvalid, validationCode(t, err))

	_, _, err = uc.Patch(context.Background(), id, dto.UpdateUserRequest{RolID: intp(0)})
	assert.Equal(t, domain.CodeRolInvalid, validationCode(t, err))

	_, _, err = uc.Patch(context.Background(), 0, dto.UpdateUserRequest{Nombre: strp("X")})
	assert.Equal(t, domain.CodeInvalidID, validationCode(t, err))
}

// ─────────────────────────────────────────────
// Remove
// ─────────────────────────────────────────────

func TestRemove_DistingueExistenteDeAusente(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	id := seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)

	found, err := uc.Remove(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = uc.Remove(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRemove_UsuarioReferenciadoEsConflicto(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	id := seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)
	repo.removeErr = domain.ErrUserInUse

	_, err := uc.Remove(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrUserInUse)
	assert.Contains(t, repo.users, id)
}

// ─────────────────────────────────────────────
// Listados
// ─────────────────────────────────────────────

func TestListPublic_OcultaEmailYHash(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedUser(repo, "Laura", "laura@tienda.co", entity.RoleAdmin)

	items, meta, err := uc.ListPublic(context.Background(), dto.PageRequest{})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Laura", items[0].Nombre)
	assert.Equal(t, entity.RoleAdmin, items[0].RolID)
	assert.Equal(t, int64(1), meta.Total)
}

func TestListAdmin_IncluyeEmail(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)

	items, _, err := uc.ListAdmin(context.Background(), dto.PageRequest{})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "laura@tienda.co", items[0].Email)
}

// ─────────────────────────────────────────────
// Avatares
// ─────────────────────────────────────────────

func TestUploadAvatar_GuardaBlobYActualizaClave(t *testing.T) {
	uc, repo, avatars := newTestUseCase()
	id := seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)

	key, err := uc.UploadAvatar(context.Background(), id, []byte("png-bytes"), "image/png")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "avatars/1-"))
	assert.Equal(t, key, repo.users[id].AvatarKey)
	assert.Equal(t, []byte("png-bytes"), avatars.blobs[key])
	assert.Empty(t, avatars.deleted)
}

func TestUploadAvatar_RotacionBorraLaClaveAnterior(t *testing.T) {
	uc, repo, avatars := newTestUseCase()
	id := seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)

	first, err := uc.UploadAvatar(context.Background(), id, []byte("v1"), "image/jpeg")
	require.NoError(t, err)

	second, err := uc.UploadAvatar(context.Background(), id, []byte("v2"), "image/webp")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, []string{first}, avatars.deleted)
	assert.Equal(t, second, repo.users[id].AvatarKey)
}

func TestUploadAvatar_Validaciones(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	id := seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)

	_, err := uc.UploadAvatar(context.Background(), id, nil, "image/png")
	assert.Equal(t, domain.CodeImageFileRequired, validationCode(t, err))

	grande := make([]byte, testMaxUpload+1)
	_, err = uc.UploadAvatar(context.Background(), id, grande, "image/png")
	assert.Equal(t, domain.CodeImageTooLarge, validationCode(t, err))

	_, err = uc.UploadAvatar(context.Background(), id, []byte("gif"), "image/gif")
	assert.Equal(t, domain.CodeImageInvalidType, validationCode(t, err))
}

func TestUploadAvatar_UsuarioAusente(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.UploadAvatar(context.Background(), 99, []byte("x"), "image/png")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestGetAvatar_DevuelveBlobYContentType(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	id := seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)
	_, err := uc.UploadAvatar(context.Background(), id, []byte("webp-bytes"), "image/webp")
	require.NoError(t, err)

	data, contentType, found, err := uc.GetAvatar(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("webp-bytes"), data)
	assert.Equal(t, "image/webp", contentType)
}

func TestGetAvatar_SinAvatarEsNotFound(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	id := seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)

	_, _, found, err := uc.GetAvatar(context.Background(), id)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetAvatar_ClaveHuerfanaEsNotFound(t *testing.T) {
	uc, repo, avatars := newTestUseCase()
	id := seedUser(repo, "Laura", "laura@tienda.co", entity.RoleUser)
	key, err := uc.UploadAvatar(context.Background(), id, []byte("x"), "image/png")
	require.NoError(t, err)
	delete(avatars.blobs, key)

	_, _, found, err := uc.GetAvatar(context.Background(), id)

	require.NoError(t, err)
	assert.False(t, found)
}

// ─────────────────────────────────────────────
// Política de contraseñas
// ─────────────────────────────────────────────

func TestCheckPasswordPolicy(t *testing.T) {
	assert.NoError(t, CheckPasswordPolicy("Clave12345"))

	err := CheckPasswordPolicy("Abc123")
	assert.Equal(t, domain.CodePasswordTooShort, validationCode(t, err))

	err = CheckPasswordPolicy("sinmayuscula1")
	assert.Equal(t, domain.CodePasswordWeak, validationCode(t, err))

	err = CheckPasswordPolicy("SinDigitosAqui")
	assert.Equal(t, domain.CodePasswordWeak, validationCode(t, err))
}
