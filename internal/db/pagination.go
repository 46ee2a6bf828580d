package db

import (
	"encoding/base64"
	"encoding/json"
)

type stakerPagination struct {
	Address string `json:"address"`
}

func encodePaginationToken(p stakerPagination) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func decodePaginationToken(token string) (*stakerPagination, error) {
	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, &InvalidPaginationTokenError{
			Message: "invalid pagination token",
		}
	}

	var p stakerPagination
	if err := json.Unmarshal(b, &p); err != nil || p.Address == "" {
		return nil, &InvalidPaginationTokenError{
			Message: "invalid pagination token",
		}
	}
	return &p, nil
}
