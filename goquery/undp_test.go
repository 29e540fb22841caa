package goquery_test

import (
	"context"
	"testing"

	"github.com/sdglab/harvest"
	"github.com/sdglab/harvest/goquery"
	"github.com/sdglab/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUNDP_Source(t *testing.T) {
	t.Parallel()

	s := goquery.NewUNDP(&mock.Fetcher{})
	info := s.Source()

	assert.Equal(t, "undp", info.ID)
	assert.Equal(t, "https://www.undp.org", info.BaseURL)
}

func TestUNDP_ListPage(t *testing.T) {
	t.Parallel()

	t.Run("parses cards and resolves relative links", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<div class="content-card">
	<a href="/publications/human-development-report"><h5>Human Development Report</h5></a>
</div>
<div class="content-card">
	<a href="https://www.undp.org/publications/climate-promise"><h5>Climate Promise</h5></a>
</div>
<div class="content-card">
	<span>no link here</span>
</div>
</body>
</html>`

		var fetched string
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				fetched = url
				return []byte(html), nil
			},
		}

		s := goquery.NewUNDP(fetcher)
		cards, err := s.ListPage(context.Background(), 2)
		require.NoError(t, err)

		assert.Equal(t, "https://www.undp.org/publications?page=2", fetched)
		require.Len(t, cards, 2)
		assert.Equal(t, "https://www.undp.org/publications/human-development-report", cards[0].URL)
		assert.Equal(t, "https://www.undp.org/publications/climate-promise", cards[1].URL)
	})

	t.Run("returns fetch error unchanged", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				return nil, harvest.Errorf(harvest.EUNAVAILABLE, "boom")
			},
		}

		s := goquery.NewUNDP(fetcher)
		_, err := s.ListPage(context.Background(), 0)
		assert.Equal(t, harvest.EUNAVAILABLE, harvest.ErrorCode(err))
	})
}

func TestUNDP_Publication(t *testing.T) {
	t.Parallel()

	t.Run("parses metadata and download links", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<h2 class="coh-heading">Human Development Report 2023/24</h2>
<h6 class="coh-heading">March 13, 2024</h6>
<div class="publication-menu">
	<div class="coh-row-inner">
		<h6>Document type</h6>
		<nav class="menu"><a href="#">Report</a></nav>
	</div>
	<div class="coh-row-inner">
		<h6>Sustainable development goals</h6>
		<nav class="menu">
			<a href="#">Goal 10</a>
			<a href="#">Goal 16</a>
			<a href="#">Goal 17</a>
		</nav>
	</div>
</div>
<a class="download-btn" href="/sites/default/files/hdr2023-24.pdf">Download</a>
<a class="download-btn" href="/sites/default/files/hdr2023-24-summary.pdf">Summary</a>
<a class="download-btn" href="/sites/default/files/hdr2023-24.pdf">Download again</a>
</body>
</html>`

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				return []byte(html), nil
			},
		}

		s := goquery.NewUNDP(fetcher)
		pub, err := s.Publication(context.Background(), harvest.Card{URL: "https://www.undp.org/publications/hdr"})
		require.NoError(t, err)

		assert.Equal(t, "https://www.undp.org/publications/hdr", pub.Source)
		assert.Equal(t, "Human Development Report 2023/24", pub.Title)
		assert.Equal(t, "Report", pub.Type)
		assert.Equal(t, 2024, pub.Year)
		assert.Equal(t, []int{10, 16, 17}, pub.Labels)
		require.Len(t, pub.Files, 2)
		assert.Equal(t, "https://www.undp.org/sites/default/files/hdr2023-24-summary.pdf", pub.Files[0].URL)
		assert.Equal(t, "https://www.undp.org/sites/default/files/hdr2023-24.pdf", pub.Files[1].URL)
		assert.True(t, pub.Labeled())
	})

	t.Run("publication without goals is unlabeled", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h2 class="coh-heading">Annual Report</h2>
<a class="download-btn" href="/files/annual.pdf">Download</a>
</body></html>`

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				return []byte(html), nil
			},
		}

		s := goquery.NewUNDP(fetcher)
		pub, err := s.Publication(context.Background(), harvest.Card{URL: "https://www.undp.org/publications/annual"})
		require.NoError(t, err)

		assert.Empty(t, pub.Labels)
		assert.False(t, pub.Labeled())
	})

	t.Run("malformed date heading yields zero year", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h2 class="coh-heading">Report</h2>
<h6 class="coh-heading">Sometime soon</h6>
</body></html>`

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) ([]byte, error) {
				return []byte(html), nil
			},
		}

		s := goquery.NewUNDP(fetcher)
		pub, err := s.Publication(context.Background(), harvest.Card{URL: "https://www.undp.org/publications/x"})
		require.NoError(t, err)
		assert.Equal(t, 0, pub.Year)
	})
}
