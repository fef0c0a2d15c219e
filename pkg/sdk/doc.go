// Package recopanel is a Go client for the assessment recommendation service
// behind the query panel.
//
// A query is classified the same way the panel does it: text that begins with
// "http" is sent as a URL reference, anything else as free text.
//
//	client, _ := recopanel.New(recopanel.WithBaseURL("http://localhost:8000"))
//	recs, err := client.Recommend(ctx, "Java developer who can collaborate")
//	if errors.Is(err, recopanel.ErrCollaboratorUnavailable) {
//	    // service down or rejected the request
//	}
//	for _, r := range recs {
//	    fmt.Println(r.Name, r.ScoreLabel(), r.URL)
//	}
package recopanel
