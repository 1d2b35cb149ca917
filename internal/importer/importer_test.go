package importer

import (
	"context"
	"ctchen222/Book-Review/internal/api/models"
	"ctchen222/Book-Review/internal/api/repository/mocks"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBookRepository(ctrl)

	input := `isbn,title,author,year
0380795272,Krondor: The Betrayal,Raymond E. Feist,1998
1416949658,"The Dark Is Rising",Susan Cooper,1973
0312853238,The Dark Tower,Stephen King,1982
`
	repo.EXPECT().GetByISBN(gomock.Any(), "0380795272").Return(nil, nil)
	repo.EXPECT().Insert(gomock.Any(), &models.Book{ISBN: "0380795272", Title: "Krondor: The Betrayal", Author: "Raymond E. Feist", Year: 1998}).Return(nil)
	repo.EXPECT().GetByISBN(gomock.Any(), "1416949658").Return(nil, nil)
	repo.EXPECT().Insert(gomock.Any(), &models.Book{ISBN: "1416949658", Title: "The Dark Is Rising", Author: "Susan Cooper", Year: 1973}).Return(nil)
	repo.EXPECT().GetByISBN(gomock.Any(), "0312853238").Return(&models.Book{ID: 1, ISBN: "0312853238"}, nil)

	res, err := Import(context.Background(), strings.NewReader(input), repo)
	require.NoError(t, err)
	assert.Equal(t, Result{Inserted: 2, Skipped: 1}, res)
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		setup func(repo *mocks.MockBookRepository)
		want  string
	}{
		{name: "empty", input: "", setup: func(*mocks.MockBookRepository) {}, want: "empty csv"},
		{name: "wrong header", input: "title,isbn,author,year\n", setup: func(*mocks.MockBookRepository) {}, want: "unexpected header"},
		{name: "wrong field count", input: "isbn,title,author,year\n1,2,3\n", setup: func(*mocks.MockBookRepository) {}, want: "wrong number of fields"},
		{name: "bad year", input: "isbn,title,author,year\n123,T,A,soon\n", setup: func(*mocks.MockBookRepository) {}, want: `line 2: invalid year "soon"`},
		{name: "missing isbn", input: "isbn,title,author,year\n ,T,A,1999\n", setup: func(*mocks.MockBookRepository) {}, want: "line 2: missing isbn"},
		{
			name:  "store failure",
			input: "isbn,title,author,year\n123,T,A,1999\n",
			setup: func(repo *mocks.MockBookRepository) {
				repo.EXPECT().GetByISBN(gomock.Any(), "123").Return(nil, errors.New("db down"))
			},
			want: "db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockBookRepository(ctrl)
			tt.setup(repo)

			_, err := Import(context.Background(), strings.NewReader(tt.input), repo)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
