package model

import "time"

const TokenAccountsCollection = "token_accounts"

type TokenAccountDocument struct {
	Address   string    `bson:"_id"`
	Mint      string    `bson:"mint"`
	Owner     string    `bson:"owner"`
	Amount    Amount    `bson:"amount"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func NewTokenAccountDocument(address, mint, owner string) *TokenAccountDocument {
	now := time.Now().UTC()
	return &TokenAccountDocument{
		Address:   address,
		Mint:      mint,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
