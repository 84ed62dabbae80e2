package firestore

import "github.com/m-mizutani/goerr/v2"

var ErrNotFound = goerr.New("record not found")
