package directive

// isIntraline reports horizontal whitespace. '\n' намеренно исключён:
// он — граница директивы, а не разделитель.
func isIntraline(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f' || b == '\r'
}

// skipIntraline advances over horizontal whitespace and host comments, clamped
// to the anchor line. Comment recognition is delegated to the host grammar;
// the skipper's own job is purely the line-boundary clamp around it:
//   - stops at '\n' without consuming it;
//   - stops as soon as the cursor is off the anchor line (a block comment may
//     legally consume its own newlines; the caller observes the crossing);
//   - stops at the first byte that is neither whitespace nor a comment start.
func skipIntraline(g Grammar, anchor uint32) error {
	for !g.EOF() {
		if g.Line() != anchor {
			return nil
		}
		b := g.Peek()
		if b == '\n' {
			return nil
		}
		if isIntraline(b) {
			g.Bump()
			continue
		}
		consumed, err := g.SkipComment()
		if err != nil {
			return err
		}
		if !consumed {
			return nil
		}
	}
	return nil
}
