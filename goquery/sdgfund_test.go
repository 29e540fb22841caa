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

func TestSDGFund_ListPage(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<body>
<div class="row-publication-teaser">
	<a href="/case-study-philippines">Case study: Philippines</a>
</div>
<div class="row-publication-teaser">
	<a href="/annual-report-2017">Annual report 2017</a>
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

	s := goquery.NewSDGFund(fetcher)
	cards, err := s.ListPage(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "https://www.sdgfund.org/library?submit=search&page=1", fetched)
	require.Len(t, cards, 2)
	assert.Equal(t, "https://www.sdgfund.org/case-study-philippines", cards[0].URL)
}

func TestSDGFund_Publication(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<body>
<h1>Case Study: Philippines</h1>
<span class="date-display-single">June 2017</span>
<div class="sdg-icons">
	<a class="sdg-icon-small" title="Goal 2: Zero hunger" href="#"><img src="/g2.png"></a>
	<a class="sdg-icon-small" title="Goal 8: Decent work" href="#"><img src="/g8.png"></a>
</div>
<a class="library-link" href="/sites/default/files/case_study_philippines.pdf">Download</a>
</body>
</html>`

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) ([]byte, error) {
			return []byte(html), nil
		},
	}

	s := goquery.NewSDGFund(fetcher)
	pub, err := s.Publication(context.Background(), harvest.Card{URL: "https://www.sdgfund.org/case-study-philippines"})
	require.NoError(t, err)

	assert.Equal(t, "Case Study: Philippines", pub.Title)
	assert.Equal(t, 2017, pub.Year)
	assert.Equal(t, []int{2, 8}, pub.Labels)
	require.Len(t, pub.Files, 1)
	assert.Equal(t, "https://www.sdgfund.org/sites/default/files/case_study_philippines.pdf", pub.Files[0].URL)
}
