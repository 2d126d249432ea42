package community

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/technobugproject/technobug/model"
	"github.com/technobugproject/technobug/utils"
)

func TestToggleLikeOnPost(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")
	post := createTestPost(t, db, author.Id)

	result, err := ToggleLike(db, liker.Id, PostTarget(post.Id))
	require.Nil(t, err)
	require.True(t, result.Liked)
	require.Equal(t, int64(1), result.LikeCount)

	// Second toggle undoes the first: same liked state and count as before.
	result, err = ToggleLike(db, liker.Id, PostTarget(post.Id))
	require.Nil(t, err)
	require.False(t, result.Liked)
	require.Equal(t, int64(0), result.LikeCount)

	var rows int64
	db.Model(&model.Like{}).Count(&rows)
	require.Equal(t, int64(0), rows)
}

func TestToggleLikeOnComment(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")
	post := createTestPost(t, db, author.Id)
	comment := createTestComment(t, db, author.Id, post.Id, nil)

	result, err := ToggleLike(db, liker.Id, CommentTarget(comment.Id))
	require.Nil(t, err)
	require.True(t, result.Liked)
	require.Equal(t, int64(1), result.LikeCount)

	var like model.Like
	require.Equal(t, int64(1), db.First(&like).RowsAffected)
	require.Nil(t, like.PostID)
	require.NotNil(t, like.CommentID)
	require.Equal(t, comment.Id, *like.CommentID)
}

func TestToggleLikeCountsOnlyTarget(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	author := createTestUser(t, db, "author")
	a := createTestUser(t, db, "liker_a")
	b := createTestUser(t, db, "liker_b")
	post := createTestPost(t, db, author.Id)
	other := createTestPost(t, db, author.Id)

	_, err := ToggleLike(db, a.Id, PostTarget(other.Id))
	require.Nil(t, err)

	result, err := ToggleLike(db, a.Id, PostTarget(post.Id))
	require.Nil(t, err)
	require.Equal(t, int64(1), result.LikeCount)

	result, err = ToggleLike(db, b.Id, PostTarget(post.Id))
	require.Nil(t, err)
	require.Equal(t, int64(2), result.LikeCount)
}

func TestToggleLikeMissingTarget(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	liker := createTestUser(t, db, "liker")

	_, err := ToggleLike(db, liker.Id, PostTarget(uuid.New().String()))
	require.ErrorIs(t, err, ErrNotFound)

	_, err = ToggleLike(db, liker.Id, CommentTarget(uuid.New().String()))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLikeMissingUser(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.Id)

	_, err := ToggleLike(db, uuid.New().String(), PostTarget(post.Id))
	require.ErrorIs(t, err, ErrNotFound)
}

// Concurrent toggles for the same (user, target) must never leave two like
// rows behind: the unique index makes one of the racing inserts fail.
func TestToggleLikeConcurrentNoDuplicates(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")
	post := createTestPost(t, db, author.Id)

	const attempts = 8
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Losing racers are allowed to error; the invariant is on rows.
			ToggleLike(db, liker.Id, PostTarget(post.Id))
		}()
	}
	wg.Wait()

	var rows int64
	db.Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", liker.Id, post.Id).
		Count(&rows)
	require.LessOrEqual(t, rows, int64(1))
}
