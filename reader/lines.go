package reader

const (
	delimLF  = 0x000A
	delimCR  = 0x000D
	delimNEL = 0x0085
	delimLS  = 0x2028
	delimPS  = 0x2029
)

func isLineDelimiter(u uint16) bool {
	return (u >= delimLF && u <= delimCR) || u == delimNEL || u == delimLS || u == delimPS
}

// Gets reads one line of at most n-1 units. The delimiter that ended the line is kept, and a CR LF
// pair is kept as a whole even when it straddles a refill. It reports false if n is not positive or
// nothing was left to read.
func (s *Stream) Gets(n int) ([]uint16, bool) {
	if n <= 0 {
		return nil, false
	}
	if s.pos >= s.limit {
		s.EnsureFilled()
	}
	n--
	if s.limit-s.pos == 0 {
		return nil, false
	}
	line := make([]uint16, 0, min(n, s.limit-s.pos))
	var pendingCR bool
	for s.limit-s.pos > 0 && len(line) < n {
		end := s.limit
		if s.pos+(n-len(line)) < end {
			end = s.pos + (n - len(line))
		}
		i := s.pos
		if !pendingCR {
			for i < end && !isLineDelimiter(s.buf[i]) {
				line = append(line, s.buf[i])
				i++
			}
			if i < end && isLineDelimiter(s.buf[i]) {
				pendingCR = s.buf[i] == delimCR
				line = append(line, s.buf[i])
				i++
				if !pendingCR {
					s.pos = i
					break
				}
			}
		}
		if i < end && pendingCR {
			if s.buf[i] == delimLF {
				line = append(line, s.buf[i])
				i++
			}
			s.pos = i
			break
		}
		s.pos = i
		s.EnsureFilled()
	}
	return line, true
}
