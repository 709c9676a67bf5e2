package content

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/asset"
	"github.com/folio-cms/folio/internal/db/models"
)

// DefaultCVLink is what the home page links to before a CV was uploaded.
const DefaultCVLink = "#"

// Media holds the URLs of the site-wide assets.
type Media struct {
	ProfileImage string
	Illustration string
	CVLink       string
}

// SiteMedia returns the current profile image, illustration and CV URLs.
func (s *Service) SiteMedia(ctx context.Context) (Media, error) {
	settings, err := s.store.ListSettings(ctx)
	if err != nil {
		return Media{}, errors.Wrap(err, "failed to load settings")
	}

	m := Media{CVLink: DefaultCVLink}

	for _, st := range settings {
		switch st.Name {
		case models.SettingProfileImage:
			m.ProfileImage = st.URL
		case models.SettingIllustration:
			m.Illustration = st.URL
		case models.SettingCVLink:
			if st.URL != "" {
				m.CVLink = st.URL
			}
		}
	}

	return m, nil
}

// ReplaceAsset uploads file and points the named setting at it. The previous
// object is destroyed only once the new URL is stored, so a failed upload or
// write leaves the setting and its object as they were.
func (s *Service) ReplaceAsset(ctx context.Context, name string, file *asset.File, kind asset.Kind) (string, error) {
	if name == "" || present(file) == nil {
		return "", errors.Wrapf(ErrValidation, "missing file for %s", name)
	}

	oldURL, _, err := s.GetSetting(ctx, name)
	if err != nil {
		return "", err
	}

	up, err := s.upload(ctx, file, kind)
	if err != nil {
		return "", errors.WithMessage(err, name)
	}

	if _, err = s.store.UpsertSetting(ctx, name, up.URL); err != nil {
		s.destroy(ctx, up.URL, kind)
		return "", errors.Wrapf(err, "failed to store setting %s", name)
	}

	if oldURL != "" && oldURL != up.URL {
		s.destroy(ctx, oldURL, kind)
	}

	log.Info().Str("setting", name).Str("url", up.URL).Msg("asset replaced")

	return up.URL, nil
}

// BundleInput carries the optional files of a profile update.
type BundleInput struct {
	ProfileImage *asset.File
	Illustration *asset.File
	CV           *asset.File
}

// Outcome is the result for one asset of a bundle.
type Outcome struct {
	Name    string
	Skipped bool
	URL     string
	Err     error
}

// BundleReport lists one Outcome per setting, in a fixed order.
type BundleReport struct {
	Outcomes []Outcome
}

// Attempted counts the assets a file was given for.
func (r BundleReport) Attempted() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Skipped {
			n++
		}
	}

	return n
}

// Failed counts the attempted assets that were not replaced.
func (r BundleReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}

	return n
}

// UpdateProfileBundle replaces each asset a file was given for. The
// replacements run concurrently and independently: one failing does not stop
// the others.
func (s *Service) UpdateProfileBundle(ctx context.Context, in BundleInput) BundleReport {
	jobs := []struct {
		name string
		file *asset.File
		kind asset.Kind
	}{
		{models.SettingProfileImage, present(in.ProfileImage), asset.KindImage},
		{models.SettingIllustration, present(in.Illustration), asset.KindImage},
		{models.SettingCVLink, present(in.CV), asset.KindRaw},
	}

	report := BundleReport{Outcomes: make([]Outcome, len(jobs))}

	var wg sync.WaitGroup

	for i, job := range jobs {
		out := &report.Outcomes[i]
		out.Name = job.name

		if job.file == nil {
			out.Skipped = true
			continue
		}

		wg.Add(1)

		go func() {
			defer wg.Done()

			out.URL, out.Err = s.ReplaceAsset(ctx, job.name, job.file, job.kind)
			if out.Err != nil {
				log.Error().Err(out.Err).Str("setting", job.name).Msg("profile asset not replaced")
			}
		}()
	}

	wg.Wait()

	return report
}

func (s *Service) upload(ctx context.Context, file *asset.File, kind asset.Kind) (asset.Uploaded, error) {
	up, err := s.host.Upload(ctx, file, kind)
	if err != nil {
		countAsset(opUpload, kind, resultError)

		if !errors.Is(err, asset.ErrUpload) {
			err = errors.Wrap(ErrUpload, err.Error())
		}

		return asset.Uploaded{}, err
	}

	countAsset(opUpload, kind, resultOK)

	return up, nil
}

// destroy removes the object behind url. Failures are logged and swallowed, the
// caller's operation has already succeeded.
func (s *Service) destroy(ctx context.Context, url string, kind asset.Kind) {
	publicID := asset.PublicID(url)
	if publicID == "" {
		return
	}

	err := s.host.Destroy(context.WithoutCancel(ctx), publicID, kind)

	switch {
	case err == nil:
		countAsset(opDestroy, kind, resultOK)
	case errors.Is(err, asset.ErrNotFoundOnRemote):
		countAsset(opDestroy, kind, resultMissing)
		log.Debug().Str("public_id", publicID).Msg("asset already gone from media host")
	default:
		countAsset(opDestroy, kind, resultError)
		log.Warn().Err(err).Str("public_id", publicID).Str("kind", string(kind)).Msg("failed to destroy asset, left orphaned")
	}
}
