package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-cms/folio/internal/asset"
	"github.com/folio-cms/folio/internal/asset/assettest"
	"github.com/folio-cms/folio/internal/db"
	"github.com/folio-cms/folio/internal/db/dbtest"
	"github.com/folio-cms/folio/internal/db/gormstore"
	"github.com/folio-cms/folio/internal/db/models"
)

var errStore = errors.New("store unavailable")

// failingStore lets single writes fail on top of a working store.
type failingStore struct {
	db.Store
	failUpsert        bool
	failCreateProject bool
}

func (f *failingStore) UpsertSetting(ctx context.Context, name, url string) (*models.Setting, error) {
	if f.failUpsert {
		return nil, errStore
	}

	return f.Store.UpsertSetting(ctx, name, url)
}

func (f *failingStore) CreateProject(ctx context.Context, p *models.Project) error {
	if f.failCreateProject {
		return errStore
	}

	return f.Store.CreateProject(ctx, p)
}

func setup(t *testing.T) (*Service, *failingStore, *assettest.Host) {
	t.Helper()

	store, err := gormstore.New(dbtest.Open(t))
	require.NoError(t, err)

	fs := &failingStore{Store: store}
	host := &assettest.Host{}

	return New(fs, host), fs, host
}

func file(name string) *asset.File {
	return &asset.File{Filename: name, Content: strings.NewReader("content of " + name)}
}

func TestAddProject(t *testing.T) {
	svc, _, host := setup(t)
	ctx := context.Background()

	p, err := svc.AddProject(ctx, "folio", "the site you are on", file("shot.png"))
	require.NoError(t, err)
	assert.NotEmpty(t, p.ImageURL)

	projects, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "folio", projects[0].Title)
	assert.Equal(t, "the site you are on", projects[0].Description)
	assert.Equal(t, host.Uploads()[0].URL, projects[0].ImageURL)
}

func TestAddProject_Validation(t *testing.T) {
	svc, _, host := setup(t)
	ctx := context.Background()

	for name, image := range map[string]*asset.File{
		"nil file":     nil,
		"empty reader": {Filename: "a.png"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddProject(ctx, "title", "desc", image)
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), "image")
		})
	}

	assert.Empty(t, host.Uploads())
}

func TestAddProject_UploadFails(t *testing.T) {
	svc, _, host := setup(t)
	host.UploadErr = func(*asset.File, asset.Kind) error { return errors.New("quota exceeded") }

	_, err := svc.AddProject(context.Background(), "t", "d", file("a.png"))
	require.ErrorIs(t, err, ErrUpload)

	projects, err := svc.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestAddProject_StoreFailsCleansUpUpload(t *testing.T) {
	svc, fs, host := setup(t)
	fs.failCreateProject = true

	_, err := svc.AddProject(context.Background(), "t", "d", file("a.png"))
	require.ErrorIs(t, err, errStore)

	up := host.Uploads()
	require.Len(t, up, 1)
	assert.False(t, host.Has(up[0].PublicID))
}

func TestDeleteProject(t *testing.T) {
	svc, _, host := setup(t)
	ctx := context.Background()

	p, err := svc.AddProject(ctx, "gone soon", "", file("x.jpg"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProject(ctx, p.ID))

	projects, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	destroyed := host.Destroyed()
	require.Len(t, destroyed, 1)
	assert.Equal(t, assettest.Destroyed{PublicID: asset.PublicID(p.ImageURL), Kind: asset.KindImage}, destroyed[0])

	err = svc.DeleteProject(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, host.Destroyed(), 1)
}

func TestReplaceAsset_Sequence(t *testing.T) {
	svc, _, host := setup(t)
	ctx := context.Background()

	urlA, err := svc.ReplaceAsset(ctx, models.SettingCVLink, file("a.pdf"), asset.KindRaw)
	require.NoError(t, err)
	assert.Empty(t, host.Destroyed())

	urlB, err := svc.ReplaceAsset(ctx, models.SettingCVLink, file("b.pdf"), asset.KindRaw)
	require.NoError(t, err)

	got, ok, err := svc.GetSetting(ctx, models.SettingCVLink)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, urlB, got)

	destroyed := host.Destroyed()
	require.Len(t, destroyed, 1)
	assert.Equal(t, asset.PublicID(urlA), destroyed[0].PublicID)
	assert.Equal(t, asset.KindRaw, destroyed[0].Kind)
	assert.True(t, host.Has(asset.PublicID(urlB)))
}

func TestReplaceAsset_UploadFailureKeepsOldValue(t *testing.T) {
	svc, _, host := setup(t)
	ctx := context.Background()

	old, err := svc.ReplaceAsset(ctx, models.SettingProfileImage, file("me.png"), asset.KindImage)
	require.NoError(t, err)

	host.UploadErr = func(*asset.File, asset.Kind) error { return errors.New("timeout") }

	_, err = svc.ReplaceAsset(ctx, models.SettingProfileImage, file("new.png"), asset.KindImage)
	require.ErrorIs(t, err, ErrUpload)

	got, _, err := svc.GetSetting(ctx, models.SettingProfileImage)
	require.NoError(t, err)
	assert.Equal(t, old, got)
	assert.Empty(t, host.Destroyed())
	assert.True(t, host.Has(asset.PublicID(old)))
}

func TestReplaceAsset_StoreFailureDestroysNewUpload(t *testing.T) {
	svc, fs, host := setup(t)
	ctx := context.Background()

	old, err := svc.ReplaceAsset(ctx, models.SettingIllustration, file("old.png"), asset.KindImage)
	require.NoError(t, err)

	fs.failUpsert = true

	_, err = svc.ReplaceAsset(ctx, models.SettingIllustration, file("new.png"), asset.KindImage)
	require.ErrorIs(t, err, errStore)

	uploads := host.Uploads()
	require.Len(t, uploads, 2)
	assert.False(t, host.Has(uploads[1].PublicID))
	assert.True(t, host.Has(asset.PublicID(old)))

	got, _, err := svc.GetSetting(ctx, models.SettingIllustration)
	require.NoError(t, err)
	assert.Equal(t, old, got)
}

func TestReplaceAsset_DestroyFailureIsSwallowed(t *testing.T) {
	svc, _, host := setup(t)
	ctx := context.Background()

	_, err := svc.ReplaceAsset(ctx, models.SettingCVLink, file("a.pdf"), asset.KindRaw)
	require.NoError(t, err)

	host.DestroyErr = errors.New("remote 500")
	before := testutil.ToFloat64(assetOperations.WithLabelValues(opDestroy, string(asset.KindRaw), resultError))

	urlB, err := svc.ReplaceAsset(ctx, models.SettingCVLink, file("b.pdf"), asset.KindRaw)
	require.NoError(t, err)

	got, _, err := svc.GetSetting(ctx, models.SettingCVLink)
	require.NoError(t, err)
	assert.Equal(t, urlB, got)

	after := testutil.ToFloat64(assetOperations.WithLabelValues(opDestroy, string(asset.KindRaw), resultError))
	assert.InDelta(t, 1, after-before, 0)
}

func TestReplaceAsset_Validation(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.ReplaceAsset(context.Background(), models.SettingCVLink, nil, asset.KindRaw)
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetSetting_Missing(t *testing.T) {
	svc, _, _ := setup(t)

	url, ok, err := svc.GetSetting(context.Background(), models.SettingCVLink)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, url)
}

func TestSiteMedia(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	m, err := svc.SiteMedia(ctx)
	require.NoError(t, err)
	assert.Equal(t, Media{CVLink: DefaultCVLink}, m)

	img, err := svc.ReplaceAsset(ctx, models.SettingProfileImage, file("me.png"), asset.KindImage)
	require.NoError(t, err)
	cv, err := svc.ReplaceAsset(ctx, models.SettingCVLink, file("cv.pdf"), asset.KindRaw)
	require.NoError(t, err)

	m, err = svc.SiteMedia(ctx)
	require.NoError(t, err)
	assert.Equal(t, Media{ProfileImage: img, CVLink: cv}, m)
}

func TestSkills(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	testCases := []struct {
		name    string
		skill   string
		icon    string
		wantErr error
	}{
		{name: "valid", skill: "Go", icon: "fa-brands fa-golang"},
		{name: "missing name", skill: "  ", icon: "fa-brands fa-golang", wantErr: ErrValidation},
		{name: "missing icon", skill: "Go", icon: "", wantErr: ErrValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sk, err := svc.AddSkill(ctx, tc.skill, tc.icon)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.NoError(t, svc.DeleteSkill(ctx, sk.ID))
			require.ErrorIs(t, svc.DeleteSkill(ctx, sk.ID), ErrNotFound)
		})
	}
}

func TestAddSkill_Concurrent(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.AddSkill(ctx, fmt.Sprintf("skill %d", i), "fa-solid fa-code")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	skills, err := svc.ListSkills(ctx)
	require.NoError(t, err)

	var names []string
	for _, sk := range skills {
		names = append(names, sk.Name)
	}
	assert.ElementsMatch(t, []string{"skill 0", "skill 1"}, names)
}

func TestMessages(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.SubmitMessage(ctx, "", "a@b.com", "hi"))
	require.NoError(t, svc.SubmitMessage(ctx, "Ada", "ada@example.com", "   "))

	messages, err := svc.ListMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)

	require.NoError(t, svc.SubmitMessage(ctx, "Ada", "ada@example.com", "hello"))

	messages, err = svc.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Text)

	require.NoError(t, svc.DeleteMessage(ctx, messages[0].ID))
	require.ErrorIs(t, svc.DeleteMessage(ctx, messages[0].ID), ErrNotFound)
}

func TestUpdateProfileBundle_OnlyIllustration(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	img, err := svc.ReplaceAsset(ctx, models.SettingProfileImage, file("me.png"), asset.KindImage)
	require.NoError(t, err)
	cv, err := svc.ReplaceAsset(ctx, models.SettingCVLink, file("cv.pdf"), asset.KindRaw)
	require.NoError(t, err)

	report := svc.UpdateProfileBundle(ctx, BundleInput{Illustration: file("art.svg")})
	assert.Equal(t, 1, report.Attempted())
	assert.Zero(t, report.Failed())

	m, err := svc.SiteMedia(ctx)
	require.NoError(t, err)
	assert.Equal(t, img, m.ProfileImage)
	assert.Equal(t, cv, m.CVLink)
	assert.NotEmpty(t, m.Illustration)
}

func TestUpdateProfileBundle_PartialFailure(t *testing.T) {
	svc, _, host := setup(t)
	ctx := context.Background()

	host.UploadErr = func(f *asset.File, _ asset.Kind) error {
		if f.Filename == "cv.pdf" {
			return errors.New("file too large")
		}
		return nil
	}

	report := svc.UpdateProfileBundle(ctx, BundleInput{
		ProfileImage: file("me.png"),
		Illustration: file("art.png"),
		CV:           file("cv.pdf"),
	})

	assert.Equal(t, 3, report.Attempted())
	assert.Equal(t, 1, report.Failed())

	byName := map[string]Outcome{}
	for _, o := range report.Outcomes {
		byName[o.Name] = o
	}

	require.ErrorIs(t, byName[models.SettingCVLink].Err, ErrUpload)
	assert.NotEmpty(t, byName[models.SettingProfileImage].URL)
	assert.NotEmpty(t, byName[models.SettingIllustration].URL)

	_, ok, err := svc.GetSetting(ctx, models.SettingCVLink)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateProfileBundle_NothingGiven(t *testing.T) {
	svc, _, host := setup(t)

	report := svc.UpdateProfileBundle(context.Background(), BundleInput{})
	assert.Zero(t, report.Attempted())
	assert.Len(t, report.Outcomes, 3)
	assert.Empty(t, host.Uploads())
}
