package domain

import "strconv"

type ChatID int64

type MessageID int64

// UserID identifies both the local user and contacts.
type UserID int64

func (id ChatID) String() string    { return strconv.FormatInt(int64(id), 10) }
func (id MessageID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id UserID) String() string    { return strconv.FormatInt(int64(id), 10) }
