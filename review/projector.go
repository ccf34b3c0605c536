package review

import (
	"github.com/dshills/redline/overlay"
)

// Project derives the decoration set for the current registry contents.
//
// A record with an original class gets a block replacement over its
// original span: the captured original text is rendered as a plain block
// carrying the class, taking the span out of ordinary line numbering
// while it is pending. A record with an improved class gets a mark over
// its inserted span. The result is rebuilt from scratch on every call;
// nothing here survives an edit, so projection can never drift from the
// registry.
func Project(reg *Registry) overlay.Set {
	if reg.Len() == 0 {
		return overlay.Set{}
	}
	decs := make([]overlay.Decoration, 0, reg.Len()*2)
	for _, rec := range reg.Records() {
		if rec.OriginalClass != "" && rec.OriginalTo > rec.OriginalFrom {
			decs = append(decs, overlay.NewReplace(
				rec.OriginalFrom, rec.OriginalTo,
				rec.OriginalText, rec.OriginalClass,
				true,
			))
		}
		if rec.ImprovedClass != "" && rec.InsertedTo > rec.InsertedFrom {
			decs = append(decs, overlay.NewMark(
				rec.InsertedFrom, rec.InsertedTo,
				rec.ImprovedClass,
			))
		}
	}
	return overlay.BuildSet(decs...)
}
