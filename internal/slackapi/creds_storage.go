package slackapi

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rusq/encio"
)

// CredsStorage keeps the tokens in an encrypted file.
type CredsStorage struct {
	filename string
}

// Creds is the structure of data in the storage.
type Creds struct {
	BotToken  string `json:"bot_token,omitempty"`
	UserToken string `json:"user_token,omitempty"`
}

// IsComplete returns true if both tokens are set.
func (c Creds) IsComplete() bool {
	return c.BotToken != "" && c.UserToken != ""
}

func NewCredsStorage(filename string) CredsStorage {
	return CredsStorage{filename: filename}
}

func (cs CredsStorage) IsAvailable() bool {
	if cs.filename == "" {
		return false
	}
	_, err := os.Stat(cs.filename)
	return err == nil
}

func (cs CredsStorage) Save(c Creds) error {
	f, err := encio.Create(cs.filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return cs.write(f, c)
}

func (cs CredsStorage) write(f io.Writer, c Creds) error {
	enc := json.NewEncoder(f)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return nil
}

func (cs CredsStorage) Load() (Creds, error) {
	f, err := encio.Open(cs.filename)
	if err != nil {
		return Creds{}, err
	}
	defer f.Close()

	return cs.read(f)
}

func (cs CredsStorage) read(r io.Reader) (Creds, error) {
	var c Creds
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Creds{}, err
	}
	return c, nil
}

// Remove deletes the storage file, if it exists.
func (cs CredsStorage) Remove() error {
	if err := os.Remove(cs.filename); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
