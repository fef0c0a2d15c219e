package tui

import "github.com/kailas-cloud/recopanel/internal/usecase/recommend"

// resultMsg carries the outcome of one dispatched request back to the event loop.
type resultMsg recommend.Outcome

// openedMsg reports the result of handing a link to the system browser.
type openedMsg struct {
	url string
	err error
}
