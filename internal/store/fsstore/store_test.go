package fsstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"mcphub/internal/types"
)

type FSStoreTestSuite struct {
	suite.Suite

	dir string
	st  *Store
}

func TestFSStoreTestSuite(t *testing.T) {
	suite.Run(t, new(FSStoreTestSuite))
}

func (s *FSStoreTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.st = New(s.dir)
}

func (s *FSStoreTestSuite) write(name, content string) {
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, name), []byte(content), 0o600))
}

func (s *FSStoreTestSuite) TestListClientsEmptyDir() {
	clients, err := s.st.ListClients(context.Background())
	s.NoError(err)
	s.Empty(clients)

	// A directory that doesn't exist yet behaves the same.
	clients, err = New(filepath.Join(s.dir, "nope")).ListClients(context.Background())
	s.NoError(err)
	s.Empty(clients)
}

func (s *FSStoreTestSuite) TestPutGetRoundTrip() {
	ctx := context.Background()
	doc := types.ClientDocument{
		"telegram": {"token": "abc", "chat_id": "42"},
	}
	s.NoError(s.st.PutClientDocument(ctx, "acme", doc))

	got, err := s.st.GetClientDocument(ctx, "acme")
	s.NoError(err)
	s.Equal("abc", got["telegram"]["token"])
	s.Equal("42", got["telegram"]["chat_id"])
}

func (s *FSStoreTestSuite) TestGetUnknownClient() {
	_, err := s.st.GetClientDocument(context.Background(), "ghost")
	s.True(errors.Is(err, types.ErrNotFound))
}

func (s *FSStoreTestSuite) TestJSONDocument() {
	s.write("acme.json", `{"dropbox": {"access_token": "tok"}}`)
	got, err := s.st.GetClientDocument(context.Background(), "acme")
	s.NoError(err)
	s.Equal("tok", got["dropbox"]["access_token"])
}

func (s *FSStoreTestSuite) TestInvalidDocument() {
	s.write("bad.yaml", "telegram: {token: \"abc\"\n")
	_, err := s.st.GetClientDocument(context.Background(), "bad")
	s.Error(err)
	s.True(errors.Is(err, types.ErrConfigFileInvalid))
	s.Contains(err.Error(), filepath.Join(s.dir, "bad.yaml"))
}

func (s *FSStoreTestSuite) TestNonMappingSection() {
	s.write("flat.yaml", "telegram: just-a-string\n")
	_, err := s.st.GetClientDocument(context.Background(), "flat")
	s.True(errors.Is(err, types.ErrConfigFileInvalid))
	s.Contains(err.Error(), "telegram")
}

func (s *FSStoreTestSuite) TestListAndDelete() {
	ctx := context.Background()
	s.write("acme.yaml", "telegram: {}\n")
	s.write("globex.yml", "telegram: {}\n")
	s.write("notes.txt", "not a document")

	clients, err := s.st.ListClients(ctx)
	s.NoError(err)
	s.Equal([]string{"acme", "globex"}, clients)

	s.NoError(s.st.DeleteClientDocument(ctx, "globex"))
	clients, err = s.st.ListClients(ctx)
	s.NoError(err)
	s.Equal([]string{"acme"}, clients)

	err = s.st.DeleteClientDocument(ctx, "globex")
	s.True(errors.Is(err, types.ErrNotFound))
}

func (s *FSStoreTestSuite) TestDocumentRef() {
	s.Equal(filepath.Join(s.dir, "acme.yaml"), s.st.DocumentRef("acme"))
}
