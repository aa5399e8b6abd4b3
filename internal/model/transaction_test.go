package model

import "testing"

func TestTxStatus(t *testing.T) {
	cases := []struct {
		quantity, returned int
		want               string
	}{
		{10, 0, TxStatusIssued},
		{10, 1, TxStatusPartiallyReturned},
		{10, 9, TxStatusPartiallyReturned},
		{10, 10, TxStatusReturned},
		{1, 0, TxStatusIssued},
		{1, 1, TxStatusReturned},
	}

	for _, c := range cases {
		if got := TxStatus(c.quantity, c.returned); got != c.want {
			t.Errorf("TxStatus(%d, %d) = %s, want %s", c.quantity, c.returned, got, c.want)
		}
	}
}
