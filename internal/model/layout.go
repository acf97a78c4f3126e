package model

import "strings"

// GenerateSeats deterministically produces the full seat set for a
// rows x seatsPerRow layout.  Row index 0 maps to label "A"; past "Z"
// the labels continue in base 26 ("AA", "AB", ...).  Seat numbers are
// 1-based within each row.  Seats are returned in row-major order.
func GenerateSeats(roomID uint64, rows, seatsPerRow int) []Seat {
	if rows <= 0 || seatsPerRow <= 0 {
		return nil
	}
	seats := make([]Seat, 0, rows*seatsPerRow)
	for r := 0; r < rows; r++ {
		label := RowLabel(r)
		for n := 1; n <= seatsPerRow; n++ {
			seats = append(seats, Seat{
				RoomID:     roomID,
				RowLabel:   label,
				SeatNumber: n,
			})
		}
	}
	return seats
}

// RowLabel converts a zero-based row index to an alphabetical label like A, B, AA.
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		rem := i % 26
		res = append(res, rune('A'+rem))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// RowLabelIndex converts a row label like A or AA back to its zero-based index.
func RowLabelIndex(label string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if s == "" {
		return -1, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < 'A' || ch > 'Z' {
			return -1, false
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n - 1, true
}
