// Package review implements inline review overlays: a marked original
// span, a suggested replacement inserted directly below it, and the
// bookkeeping to accept or reject the suggestion later no matter how
// the document has changed in between.
//
// # Model
//
// Adding a review performs one atomic transaction against the session:
//
//   - The target (a line, a line range, or an offset span) is resolved
//     to the span it covers right now.
//   - A newline plus the improved text is inserted at the end of the
//     line containing the span's end, so the suggestion reads as a
//     block directly under the original.
//   - A Record capturing both regions is stored in the registry, keyed
//     by id.
//
// From then on the record's offsets are remapped through every
// transaction, so they keep tracking the same text while the user
// edits around (or inside) it. Decorations are projected from the
// registry on demand:
//
//   - the original span renders as a block Replace carrying the
//     original text and the review's original class
//   - the inserted span renders as a Mark carrying the improved class
//
// # Resolution
//
//	ctl.AcceptReview(id) // delete the original span and its separator
//	ctl.RejectReview(id) // delete the inserted text and its separator
//	ctl.RemoveReview(id) // drop decorations only, keep both texts
//	ctl.ClearReviews()   // drop every review, keep the document
//
// Accept and reject each run as a single transaction that performs the
// deletion and retires the record together.
//
// # Usage
//
//	sess := editor.NewSession("func add(a, b int) int {\n\treturn a + b\n}\n")
//	ctl := review.New(review.WithDefaultClasses("review-original", "review-improved"))
//	if err := sess.Use(ctl); err != nil {
//	    log.Fatal(err)
//	}
//
//	ctl.AddReview(review.Request{
//	    Target:   review.Line(1),
//	    Improved: "func add(a, b int) (sum int) {",
//	    ID:       "sig-1",
//	})
//
//	decs := sess.Decorations() // feed the host's renderer
//	ctl.AcceptReview("sig-1")
//
// # Error Handling
//
// Operations never fail loudly. Requests that resolve to nothing,
// duplicate ids, and unknown ids on accept/reject/remove all degrade
// to a no-op (logged at debug level), leaving the document and the
// other reviews untouched.
//
// # Concurrency
//
// A Controller is bound to one Session and inherits its threading
// model: all calls must come from the session's goroutine.
package review
