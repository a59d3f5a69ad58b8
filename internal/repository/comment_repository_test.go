package repository

import (
	"context"
	"fmt"
	"testing"

	"emberlink/internal/apperr"
	"emberlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTopLevelComment(t *testing.T) {
	conn := setupTestDB(t)
	comments := NewCommentRepository(conn)
	ctx := context.Background()

	author := seedUser(t, conn, "author")
	post := seedPost(t, conn, author.ID, "hello")

	comment, err := comments.CreateTopLevel(ctx, post.ID, author.ID, "nice post!")
	require.NoError(t, err)
	assert.Equal(t, 0, comment.Depth)
	assert.Equal(t, 0, comment.CommentCount)
	assert.Nil(t, comment.ParentCommentID)
	assert.Equal(t, post.ID, comment.PostID)

	var reloaded models.Post
	require.NoError(t, conn.First(&reloaded, post.ID).Error)
	assert.Equal(t, 1, reloaded.CommentCount)
}

func TestCreateReply(t *testing.T) {
	conn := setupTestDB(t)
	comments := NewCommentRepository(conn)
	ctx := context.Background()

	author := seedUser(t, conn, "author")
	replier := seedUser(t, conn, "replier")
	post := seedPost(t, conn, author.ID, "hello")

	parent, err := comments.CreateTopLevel(ctx, post.ID, author.ID, "nice post!")
	require.NoError(t, err)

	reply, err := comments.CreateReply(ctx, parent.ID, replier.ID, "agreed entirely")
	require.NoError(t, err)
	assert.Equal(t, parent.Depth+1, reply.Depth)
	assert.Equal(t, post.ID, reply.PostID)
	require.NotNil(t, reply.ParentCommentID)
	assert.Equal(t, parent.ID, *reply.ParentCommentID)

	// Both the parent's and the root post's counters moved exactly once.
	var reloadedParent models.Comment
	require.NoError(t, conn.First(&reloadedParent, parent.ID).Error)
	assert.Equal(t, 1, reloadedParent.CommentCount)

	var reloadedPost models.Post
	require.NoError(t, conn.First(&reloadedPost, post.ID).Error)
	assert.Equal(t, 2, reloadedPost.CommentCount)
}

func TestCreateReplyMissingParent(t *testing.T) {
	conn := setupTestDB(t)
	comments := NewCommentRepository(conn)

	author := seedUser(t, conn, "author")

	_, err := comments.CreateReply(context.Background(), 9999, author.ID, "into the void")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// The rolled-back insert left no comment rows.
	var count int64
	require.NoError(t, conn.Model(&models.Comment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateTopLevelMissingPost(t *testing.T) {
	conn := setupTestDB(t)
	comments := NewCommentRepository(conn)

	author := seedUser(t, conn, "author")

	_, err := comments.CreateTopLevel(context.Background(), 9999, author.ID, "hello?")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListTopLevelPaginationCoversAllRows(t *testing.T) {
	conn := setupTestDB(t)
	comments := NewCommentRepository(conn)
	ctx := context.Background()

	author := seedUser(t, conn, "author")
	post := seedPost(t, conn, author.ID, "hello")

	const total = 25
	for i := 0; i < total; i++ {
		_, err := comments.CreateTopLevel(ctx, post.ID, author.ID, fmt.Sprintf("comment number %02d", i))
		require.NoError(t, err)
	}

	seen := make(map[uint]bool)
	params := ListParams{SortBy: SortByRecent, Order: OrderAsc, Page: 1, Limit: 10}

	first, page, err := comments.ListTopLevel(ctx, post.ID, params, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, first, 10)

	for p := 1; p <= page.TotalPages; p++ {
		params.Page = p
		items, _, err := comments.ListTopLevel(ctx, post.ID, params, 0)
		require.NoError(t, err)
		for _, item := range items {
			assert.False(t, seen[item.ID], "comment %d returned twice", item.ID)
			seen[item.ID] = true
		}
	}
	assert.Len(t, seen, total)

	// Out-of-range pages are empty, not an error.
	params.Page = page.TotalPages + 1
	items, page, err := comments.ListTopLevel(ctx, post.ID, params, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListTopLevelExcludesReplies(t *testing.T) {
	conn := setupTestDB(t)
	comments := NewCommentRepository(conn)
	ctx := context.Background()

	author := seedUser(t, conn, "author")
	post := seedPost(t, conn, author.ID, "hello")

	parent, err := comments.CreateTopLevel(ctx, post.ID, author.ID, "top level")
	require.NoError(t, err)
	_, err = comments.CreateReply(ctx, parent.ID, author.ID, "nested reply")
	require.NoError(t, err)

	items, page, err := comments.ListTopLevel(ctx, post.ID, ListParams{Page: 1, Limit: 10}, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, parent.ID, items[0].ID)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListTopLevelChildPreview(t *testing.T) {
	conn := setupTestDB(t)
	comments := NewCommentRepository(conn)
	votes := NewVoteRepository(conn)
	ctx := context.Background()

	author := seedUser(t, conn, "author")
	post := seedPost(t, conn, author.ID, "hello")

	parent, err := comments.CreateTopLevel(ctx, post.ID, author.ID, "top level")
	require.NoError(t, err)

	var replies []*models.Comment
	for i := 0; i < 4; i++ {
		reply, err := comments.CreateReply(ctx, parent.ID, author.ID, fmt.Sprintf("reply number %d", i))
		require.NoError(t, err)
		replies = append(replies, reply)
	}
	// Push one reply to the top of the preview ordering.
	voter := seedUser(t, conn, "voter")
	_, _, err = votes.ToggleComment(ctx, replies[3].ID, voter.ID)
	require.NoError(t, err)

	items, _, err := comments.ListTopLevel(ctx, post.ID, ListParams{Page: 1, Limit: 10}, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Len(t, items[0].ChildComments, 2)
	assert.Equal(t, replies[3].ID, items[0].ChildComments[0].ID)
}

func TestListRepliesPagesChildren(t *testing.T) {
	conn := setupTestDB(t)
	comments := NewCommentRepository(conn)
	ctx := context.Background()

	author := seedUser(t, conn, "author")
	post := seedPost(t, conn, author.ID, "hello")

	parent, err := comments.CreateTopLevel(ctx, post.ID, author.ID, "top level")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := comments.CreateReply(ctx, parent.ID, author.ID, fmt.Sprintf("reply number %d", i))
		require.NoError(t, err)
	}

	items, page, err := comments.ListReplies(ctx, parent.ID, ListParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListTopLevelMissingPost(t *testing.T) {
	conn := setupTestDB(t)
	comments := NewCommentRepository(conn)

	_, _, err := comments.ListTopLevel(context.Background(), 9999, ListParams{Page: 1, Limit: 10}, 0)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListRepliesMissingComment(t *testing.T) {
	conn := setupTestDB(t)
	comments := NewCommentRepository(conn)

	_, _, err := comments.ListReplies(context.Background(), 9999, ListParams{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
