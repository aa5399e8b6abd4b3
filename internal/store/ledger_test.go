package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/mkovac/armory/internal/db"
	"github.com/mkovac/armory/internal/model"
)

func seedProduct(t *testing.T, database *sql.DB, name, barcode string, total, available int) *model.Product {
	t.Helper()
	p, err := CreateProduct(context.Background(), database, &model.Product{
		Name:              name,
		Barcode:           barcode,
		TotalQuantity:     total,
		AvailableQuantity: available,
	})
	if err != nil {
		t.Fatalf("seeding product: %v", err)
	}
	return p
}

func issueReq(barcode string, quantity int) IssueRequest {
	return IssueRequest{
		Barcode:     barcode,
		BadgeNumber: "B-100",
		Name:        "Rao",
		Department:  "Ops",
		Quantity:    quantity,
		Purpose:     "patrol",
	}
}

func TestIssueDecrementsStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	seedProduct(t, database, "Radio Set", "RS-01", 10, 10)

	txn, err := Issue(ctx, database, issueReq("RS-01", 4))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if txn.Status != model.TxStatusIssued {
		t.Errorf("expected status ISSUED, got %s", txn.Status)
	}
	if txn.ReturnedQuantity != 0 {
		t.Errorf("expected returnedQuantity 0, got %d", txn.ReturnedQuantity)
	}
	if txn.Product.AvailableQuantity != 6 {
		t.Errorf("expected available 6, got %d", txn.Product.AvailableQuantity)
	}
	if txn.Officer.BadgeNumber != "B-100" {
		t.Errorf("expected officer badge B-100, got %s", txn.Officer.BadgeNumber)
	}
}

func TestIssueUnknownBarcode(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := Issue(ctx, database, issueReq("NOPE", 1))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// All-or-nothing: the officer upsert must not have survived.
	officers, _ := ListOfficers(ctx, database)
	if len(officers) != 0 {
		t.Errorf("expected no officers after failed issue, got %d", len(officers))
	}
}

func TestIssueInsufficientStockLeavesStoresUntouched(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p := seedProduct(t, database, "Radio Set", "RS-01", 10, 3)

	_, err := Issue(ctx, database, issueReq("RS-01", 5))
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if !strings.Contains(err.Error(), "3") {
		t.Errorf("expected message to report available stock, got %q", err)
	}

	after, _ := GetProduct(ctx, database, p.ID)
	if after.AvailableQuantity != 3 {
		t.Errorf("expected available unchanged at 3, got %d", after.AvailableQuantity)
	}
	officers, _ := ListOfficers(ctx, database)
	if len(officers) != 0 {
		t.Errorf("expected no officers after failed issue, got %d", len(officers))
	}
	txns, _ := ListTransactions(ctx, database)
	if len(txns) != 0 {
		t.Errorf("expected no transactions after failed issue, got %d", len(txns))
	}
}

func TestFullReturnRestoresStockExactly(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p := seedProduct(t, database, "Radio Set", "RS-01", 10, 7)

	txn, err := Issue(ctx, database, issueReq("RS-01", 5))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	status, err := Return(ctx, database, txn.ID, 5)
	if err != nil {
		t.Fatalf("Return: %v", err)
	}
	if status != model.TxStatusReturned {
		t.Errorf("expected status RETURNED, got %s", status)
	}

	after, _ := GetProduct(ctx, database, p.ID)
	if after.AvailableQuantity != 7 {
		t.Errorf("expected available restored to 7, got %d", after.AvailableQuantity)
	}
}

func TestSequentialPartialReturns(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	seedProduct(t, database, "Radio Set", "RS-01", 10, 10)

	txn, err := Issue(ctx, database, issueReq("RS-01", 10))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	steps := []struct {
		quantity   int
		wantStatus string
	}{
		{3, model.TxStatusPartiallyReturned},
		{4, model.TxStatusPartiallyReturned},
		{3, model.TxStatusReturned},
	}
	for i, step := range steps {
		status, err := Return(ctx, database, txn.ID, step.quantity)
		if err != nil {
			t.Fatalf("return %d: %v", i+1, err)
		}
		if status != step.wantStatus {
			t.Errorf("return %d: expected status %s, got %s", i+1, step.wantStatus, status)
		}
	}

	after, _ := GetTransaction(ctx, database, txn.ID)
	if after.ReturnedQuantity != 10 {
		t.Errorf("expected returnedQuantity 10, got %d", after.ReturnedQuantity)
	}
	if after.ReturnedAt == nil {
		t.Error("expected returnedAt to be set")
	}

	// Fully returned transactions accept nothing further.
	if _, err := Return(ctx, database, txn.ID, 1); !errors.Is(err, ErrAlreadyReturned) {
		t.Errorf("expected ErrAlreadyReturned, got %v", err)
	}
}

func TestReturnExceedingRemainingRejected(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	seedProduct(t, database, "Radio Set", "RS-01", 10, 10)

	txn, err := Issue(ctx, database, issueReq("RS-01", 10))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Return(ctx, database, txn.ID, 7); err != nil {
		t.Fatalf("Return: %v", err)
	}

	// Remaining balance is 3; asking for 4 must fail and name the balance.
	_, err = Return(ctx, database, txn.ID, 4)
	if !errors.Is(err, ErrExceedsRemaining) {
		t.Fatalf("expected ErrExceedsRemaining, got %v", err)
	}
	if !strings.Contains(err.Error(), "3") {
		t.Errorf("expected message to report remaining balance, got %q", err)
	}

	// The rejected return must not have moved stock.
	after, _ := GetTransaction(ctx, database, txn.ID)
	if after.ReturnedQuantity != 7 {
		t.Errorf("expected returnedQuantity still 7, got %d", after.ReturnedQuantity)
	}
	if after.Product.AvailableQuantity != 7 {
		t.Errorf("expected available still 7, got %d", after.Product.AvailableQuantity)
	}
}

func TestReturnNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := Return(context.Background(), database, 999, 1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClearTransactionsPreservesStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	seedProduct(t, database, "Radio Set", "RS-01", 10, 10)
	seedProduct(t, database, "Helmet", "HL-01", 20, 20)

	txn1, err := Issue(ctx, database, issueReq("RS-01", 4))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Issue(ctx, database, issueReq("HL-01", 6)); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Return(ctx, database, txn1.ID, 2); err != nil {
		t.Fatalf("Return: %v", err)
	}

	before, _ := ListProducts(ctx, database)

	if err := ClearTransactions(ctx, database); err != nil {
		t.Fatalf("ClearTransactions: %v", err)
	}

	after, _ := ListProducts(ctx, database)
	if len(before) != len(after) {
		t.Fatalf("product count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].AvailableQuantity != after[i].AvailableQuantity {
			t.Errorf("product %s available changed: %d -> %d",
				before[i].Barcode, before[i].AvailableQuantity, after[i].AvailableQuantity)
		}
	}

	txns, _ := ListTransactions(ctx, database)
	if len(txns) != 0 {
		t.Errorf("expected empty history, got %d transactions", len(txns))
	}
}

func TestListPendingExcludesReturned(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	seedProduct(t, database, "Radio Set", "RS-01", 10, 10)

	txn1, _ := Issue(ctx, database, issueReq("RS-01", 2))
	txn2, _ := Issue(ctx, database, issueReq("RS-01", 3))

	if _, err := Return(ctx, database, txn1.ID, 2); err != nil {
		t.Fatalf("Return: %v", err)
	}
	if _, err := Return(ctx, database, txn2.ID, 1); err != nil {
		t.Fatalf("Return: %v", err)
	}

	pending, err := ListPendingTransactions(ctx, database)
	if err != nil {
		t.Fatalf("ListPendingTransactions: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending transaction, got %d", len(pending))
	}
	if pending[0].ID != txn2.ID {
		t.Errorf("expected pending transaction %d, got %d", txn2.ID, pending[0].ID)
	}
	if pending[0].Status != model.TxStatusPartiallyReturned {
		t.Errorf("expected status PARTIALLY_RETURNED, got %s", pending[0].Status)
	}

	all, _ := ListTransactions(ctx, database)
	if len(all) != 2 {
		t.Errorf("expected 2 transactions in full history, got %d", len(all))
	}
	// Newest first.
	if all[0].ID != txn2.ID {
		t.Errorf("expected newest transaction first, got %d", all[0].ID)
	}
}

func TestListingsReflectCurrentProductState(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p := seedProduct(t, database, "Radio Set", "RS-01", 10, 10)

	if _, err := Issue(ctx, database, issueReq("RS-01", 2)); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Rename the product after issuance: listings join at query time and
	// must show the new name.
	p.Name = "Radio Set Mk II"
	if _, err := UpdateProduct(ctx, database, p.ID, p); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	all, _ := ListTransactions(ctx, database)
	if len(all) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(all))
	}
	if all[0].Product.Name != "Radio Set Mk II" {
		t.Errorf("expected listing to reflect renamed product, got %q", all[0].Product.Name)
	}
}

func TestOfficerUpsertOnIssue(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	seedProduct(t, database, "Radio Set", "RS-01", 10, 10)

	req := issueReq("RS-01", 1)
	req.Name = "Rao"
	if _, err := Issue(ctx, database, req); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Same badge, updated contact details: the existing record is overwritten.
	req.Name = "K. Rao"
	req.Department = "Intel"
	if _, err := Issue(ctx, database, req); err != nil {
		t.Fatalf("Issue: %v", err)
	}

	officers, _ := ListOfficers(ctx, database)
	if len(officers) != 1 {
		t.Fatalf("expected 1 officer, got %d", len(officers))
	}
	if officers[0].Name != "K. Rao" || officers[0].Department != "Intel" {
		t.Errorf("expected updated officer details, got %+v", officers[0])
	}
}

func TestConcurrentIssueLastUnit(t *testing.T) {
	database := db.NewTestFileDB(t)
	ctx := context.Background()

	seedProduct(t, database, "Radio Set", "RS-01", 1, 1)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := issueReq("RS-01", 1)
			req.BadgeNumber = "B-10" + string(rune('0'+i))
			_, results[i] = Issue(ctx, database, req)
		}(i)
	}
	wg.Wait()

	var successes, insufficient int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrInsufficientStock):
			insufficient++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 || insufficient != 1 {
		t.Errorf("expected exactly one success and one insufficient-stock, got %d/%d", successes, insufficient)
	}

	products, _ := ListProducts(ctx, database)
	if products[0].AvailableQuantity != 0 {
		t.Errorf("expected available 0 after race, got %d", products[0].AvailableQuantity)
	}
}
