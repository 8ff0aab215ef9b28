package usecase

import (
	"crypto/md5" //nolint: gosec // stable fingerprint, not a security boundary
	"encoding/base64"
	"encoding/hex"
	"sort"

	"github.com/dezh-tech/immortal/pkg/logger"

	"momentchain/internal/domain/model"
)

// Order of the prepared moment list. Publishing always uses ascending order;
// descending exists for display only.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

const (
	// Export feeds reference a thumbnail as <base>/150 and the full-size
	// image as <base>/0.
	thumbnailSuffix = "/150"
	fullSizeSuffix  = "/0"

	localAssetPrefix = "images/"
	localAssetExt    = ".jpg"

	// placeholderSeed feeds the synthesized account id when the export has
	// no profile record.
	placeholderSeed = "id"
)

// Preparer turns raw export records into their canonical in-memory form. It
// is a pure transformation: warnings are logged, never raised.
type Preparer struct {
	exclusions map[string]struct{}
}

func NewPreparer(exclusions map[string]struct{}) *Preparer {
	return &Preparer{exclusions: exclusions}
}

// Prepare filters, orders and normalizes the export.
func (p *Preparer) Prepare(export *model.Export, useLocal bool, order Order) ([]model.Moment, model.Account) {
	moments := p.Filter(export.Moments)

	sort.SliceStable(moments, func(i, j int) bool {
		return moments[i].PublishUnixMilli() < moments[j].PublishUnixMilli()
	})
	if order == OrderDesc {
		for i, j := 0, len(moments)-1; i < j; i, j = i+1, j-1 {
			moments[i], moments[j] = moments[j], moments[i]
		}
	}

	for i := range moments {
		moments[i] = prepareMoment(moments[i], useLocal)
	}

	return moments, p.prepareAccount(export.Account, useLocal)
}

// Filter drops excluded moments. Filtering is idempotent.
func (p *Preparer) Filter(moments []model.Moment) []model.Moment {
	kept := make([]model.Moment, 0, len(moments))
	for _, m := range moments {
		if _, excluded := p.exclusions[m.ID]; excluded {
			continue
		}
		kept = append(kept, m)
	}

	return kept
}

func prepareMoment(m model.Moment, useLocal bool) model.Moment {
	display := make([]string, 0, len(m.Images))
	for _, img := range m.Images {
		if isRedundantThumbnail(img, m.Images) {
			continue
		}
		if useLocal {
			img = LocalAssetHandle(img)
		}
		display = append(display, img)
	}
	m.DisplayImages = display

	if m.ShareTitle == "" && m.ShareDesc == "" && m.ShareURL == "" {
		m.Type = model.MomentTypeText
	}

	if m.Type == model.MomentTypeShare {
		if len(m.DisplayImages) > 1 {
			logger.Warn("share moment has more than one image, using the first",
				"id", m.ID, "images", len(m.DisplayImages))
		}
		if len(m.DisplayImages) > 0 {
			m.ShareImage = m.DisplayImages[0]
		} else {
			m.ShareImage = ""
		}
	}

	return m
}

// isRedundantThumbnail reports whether ref is a thumbnail whose full-size
// sibling is present in the same list.
func isRedundantThumbnail(ref string, all []string) bool {
	if len(ref) < len(thumbnailSuffix) || ref[len(ref)-len(thumbnailSuffix):] != thumbnailSuffix {
		return false
	}

	full := ref[:len(ref)-len(thumbnailSuffix)] + fullSizeSuffix
	for _, other := range all {
		if other == full {
			return true
		}
	}

	return false
}

func (p *Preparer) prepareAccount(account *model.Account, useLocal bool) model.Account {
	if account == nil {
		return model.Account{ID: fingerprint(placeholderSeed)}
	}

	prepared := *account
	if useLocal {
		prepared.DisplayAvatar = ""
		prepared.DisplayBanner = ""
		if prepared.Avatar != "" {
			prepared.DisplayAvatar = LocalAssetHandle(prepared.Avatar)
		}
		if prepared.Banner != "" {
			prepared.DisplayBanner = LocalAssetHandle(prepared.Banner)
		}
	} else {
		prepared.DisplayAvatar = prepared.Avatar
		prepared.DisplayBanner = prepared.Banner
	}

	return prepared
}

// LocalAssetHandle encodes a remote image reference as the path of its
// locally exported copy. The encoding is stable and collision-free per
// distinct reference, and reversible only via the session mapping.
func LocalAssetHandle(remote string) string {
	return localAssetPrefix + base64.URLEncoding.EncodeToString([]byte(remote)) + localAssetExt
}

func fingerprint(s string) string {
	sum := md5.Sum([]byte(s)) //nolint: gosec

	return hex.EncodeToString(sum[:])
}
