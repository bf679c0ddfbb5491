// Package bank is the fixed set of prepaid customer balances used to pay
// for bookings. Accounts are matched by exact name.
package bank

import (
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/shopspring/decimal"
)

// DefaultAccounts is the balance sheet the system starts with.
var DefaultAccounts = []models.BankAccount{
	{Name: "Abebe Bikila", Balance: 8500},
	{Name: "Abel Tesfaye", Balance: 12000},
	{Name: "Haile Gebre", Balance: 15000},
	{Name: "Tirunesh Dibaba", Balance: 9000},
	{Name: "Abe Kebe", Balance: 18000},
	{Name: "Meseret Yimer", Balance: 7500},
	{Name: "Hanan Daye", Balance: 6000},
	{Name: "Abiy Yosi", Balance: 5000},
}

// Bank only ever debits: there is no credit or refund path.
// Not safe for concurrent use.
type Bank struct {
	balances map[string]decimal.Decimal
	order    []string
}

func New(accounts []models.BankAccount) *Bank {
	b := &Bank{balances: make(map[string]decimal.Decimal, len(accounts))}
	for _, acc := range accounts {
		if _, dup := b.balances[acc.Name]; !dup {
			b.order = append(b.order, acc.Name)
		}
		b.balances[acc.Name] = decimal.NewFromFloat(acc.Balance)
	}
	return b
}

func (b *Bank) HasAccount(name string) bool {
	_, ok := b.balances[name]
	return ok
}

// BalanceOf returns 0 for unknown names.
func (b *Bank) BalanceOf(name string) float64 {
	return b.balances[name].InexactFloat64()
}

// Debit subtracts amount from the account only if the balance covers it.
func (b *Bank) Debit(name string, amount float64) bool {
	bal, ok := b.balances[name]
	if !ok {
		return false
	}
	amt := decimal.NewFromFloat(amount)
	if amt.IsNegative() || amt.GreaterThan(bal) {
		return false
	}
	b.balances[name] = bal.Sub(amt)
	return true
}

// Accounts returns a copy of every account in the order they were opened.
func (b *Bank) Accounts() []models.BankAccount {
	out := make([]models.BankAccount, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, models.BankAccount{Name: name, Balance: b.balances[name].InexactFloat64()})
	}
	return out
}
