package cloudinary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-cms/folio/internal/asset"
	"github.com/folio-cms/folio/internal/config"
)

type fakeAPI struct {
	uploadParams  uploader.UploadParams
	destroyParams uploader.DestroyParams

	uploadResult  *uploader.UploadResult
	destroyResult *uploader.DestroyResult
	err           error
}

func (f *fakeAPI) Upload(_ context.Context, _ interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.uploadParams = params
	return f.uploadResult, f.err
}

func (f *fakeAPI) Destroy(_ context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyParams = params
	return f.destroyResult, f.err
}

func TestNew(t *testing.T) {
	h, err := New(config.Cloudinary{CloudName: "demo", APIKey: "key", APISecret: "secret", Folder: "portfolio"}, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "portfolio", h.folder)
}

func TestUpload(t *testing.T) {
	testCases := []struct {
		name    string
		api     *fakeAPI
		want    asset.Uploaded
		wantErr bool
	}{
		{
			name: "stored",
			api: &fakeAPI{uploadResult: &uploader.UploadResult{
				SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/abc.png",
				PublicID:  "abc",
			}},
			want: asset.Uploaded{URL: "https://res.cloudinary.com/demo/image/upload/v1/abc.png", PublicID: "abc"},
		},
		{
			name:    "transport error",
			api:     &fakeAPI{err: errors.New("connection reset")},
			wantErr: true,
		},
		{
			name:    "api error",
			api:     &fakeAPI{uploadResult: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := &Host{api: tc.api, timeout: time.Second}

			got, err := h.Upload(context.Background(), &asset.File{Filename: "a.png", Content: strings.NewReader("png")}, asset.KindImage)
			if tc.wantErr {
				require.ErrorIs(t, err, asset.ErrUpload)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "image", tc.api.uploadParams.ResourceType)
		})
	}
}

func TestDestroy(t *testing.T) {
	testCases := []struct {
		name       string
		folder     string
		result     *uploader.DestroyResult
		err        error
		wantID     string
		wantTarget error
		wantErr    bool
	}{
		{name: "ok", result: &uploader.DestroyResult{Result: "ok"}, wantID: "abc"},
		{name: "folder prefix", folder: "portfolio", result: &uploader.DestroyResult{Result: "ok"}, wantID: "portfolio/abc"},
		{name: "not found", result: &uploader.DestroyResult{Result: "not found"}, wantID: "abc", wantTarget: asset.ErrNotFoundOnRemote},
		{name: "api error", result: &uploader.DestroyResult{Error: api.ErrorResp{Message: "bad"}}, wantID: "abc", wantErr: true},
		{name: "transport error", err: errors.New("timeout"), wantID: "abc", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeAPI{destroyResult: tc.result, err: tc.err}
			h := &Host{api: fake, folder: tc.folder}

			err := h.Destroy(context.Background(), "abc", asset.KindRaw)

			assert.Equal(t, tc.wantID, fake.destroyParams.PublicID)
			assert.Equal(t, "raw", fake.destroyParams.ResourceType)

			switch {
			case tc.wantTarget != nil:
				require.ErrorIs(t, err, tc.wantTarget)
			case tc.wantErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, asset.ErrNotFoundOnRemote)
			default:
				require.NoError(t, err)
			}
		})
	}
}
