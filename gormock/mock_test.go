package gormock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pubgo/stmtmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type User struct {
	ID        uint       `gorm:"primaryKey,autoincrement" json:"id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	Name      string     `gorm:"size:255;not null" json:"name,omitempty" validate:"required"`
	Email     string     `gorm:"size:255;not null;unique" json:"email,omitempty" validate:"required,email"`
}

func (u User) TableName() string {
	return "users"
}

type TestTab struct {
	ID    uint64 `gorm:"column:id"`
	Name  string `gorm:"column:name"`
	CTime uint32 `gorm:"column:ctime"`
	MTime uint32 `gorm:"column:mtime"`
}

func (u TestTab) TableName() string {
	return "test_tabs"
}

func Test_Select(t *testing.T) {
	mock := NewMockDB(t)

	mock.Find(&TestTab{ID: 1}).Return(&TestTab{
		ID:    1,
		Name:  "test",
		CTime: 1630250445,
		MTime: 1630250445,
	})

	var testTab *TestTab
	err := mock.DB().WithContext(context.Background()).Where("id = ?", 1).Find(&testTab).Error
	assert.Nil(t, err)
	assert.NotNil(t, testTab)
	assert.Equal(t, uint64(1), testTab.ID)
	assert.Equal(t, "test", testTab.Name)
	assert.Equal(t, uint32(1630250445), testTab.CTime)

	executed := mock.Mock().ExecutedStatements()
	assert.Len(t, executed, 1)
}

func TestCreate(t *testing.T) {
	mock := NewMockDB(t)

	var n = time.Now()
	u := &User{
		CreatedAt: &n,
		UpdatedAt: &n,
		Name:      "sheep",
		Email:     "example@gmail.com",
	}

	mock.Create(u).ExpectField("deleted_at", stmtmock.AnyArg()).Return(&User{
		ID:   2,
		Name: "sheep",
	})

	err := mock.DB().Create(u).Error
	assert.NoError(t, err)
	assert.NotNil(t, u)
	assert.Equal(t, u.ID, uint(2))
	assert.Equal(t, u.Name, "sheep")
	assert.Equal(t, 1, mock.Mock().Commits())
}

func TestCreateFails(t *testing.T) {
	mock := NewMockDB(t)

	u := &User{Name: "sheep", Email: "example@gmail.com"}
	boom := errors.New("duplicate key value violates unique constraint")
	mock.Create(u).WithArgs(stmtmock.AnyArg(), stmtmock.AnyArg(), stmtmock.AnyArg(), "sheep", "example@gmail.com").ReturnErr(boom)

	err := mock.DB().Create(u).Error
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, mock.Mock().Rollbacks())
}

func TestDelete(t *testing.T) {
	mock := NewMockDB(t)

	mock.Delete(&User{Name: "sheep"}).ReturnResult(1)
	ret := mock.DB().Where("name = ?", "sheep").Delete(&User{})
	assert.NoError(t, ret.Error)
	assert.Equal(t, ret.RowsAffected, int64(1))
}

func TestUpdate(t *testing.T) {
	mock := NewMockDB(t)

	mock.Update(&User{Name: "sheep"}).WithArgs(stmtmock.AnyArg(), "sheep", "sheep").ReturnResult(1)
	ret := mock.DB().Where("name = ?", "sheep").Updates(&User{Name: "sheep"})
	assert.NoError(t, ret.Error)
	assert.Equal(t, int64(1), ret.RowsAffected)
}

func TestFindById(t *testing.T) {
	mock := NewMockDB(t)

	var n = time.Now()
	mock.Find(&User{ID: 1}).Return(&User{
		ID:        1,
		Name:      "hello",
		Email:     "example@gmail.com",
		CreatedAt: &n,
		UpdatedAt: &n,
	})

	var user *User
	var err = mock.DB().Where("id = ?", 1).First(&user).Error
	assert.Nil(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, user.Name, "hello")

	mock.Find(&User{}).ExpectField("id", []int{1, 2}).Return(&User{
		ID:   2,
		Name: "hello1",
	})

	var user1 *User
	err = mock.DB().Select("id").Where("id in ?", []int{1, 2}).First(&user1).Error
	assert.Nil(t, err)
	assert.NotNil(t, user1)
	assert.Equal(t, user1.Name, "hello1")

	mock.Find(&User{ID: 3}).Return([]*User{
		{
			ID:   2,
			Name: "hello2",
		},
		{
			ID:   3,
			Name: "hello3",
		},
	})

	var user2 []*User
	err = mock.DB().Select("id").Where("id = ?", 3).Find(&user2).Error
	assert.Nil(t, err)
	assert.Equal(t, len(user2), 2)
	assert.Equal(t, user2[1].Name, "hello3")
}

func TestFindWithoutExpectation(t *testing.T) {
	mock := NewMockDB(t)

	var user *User
	err := mock.DB().Where("id = ?", 7).First(&user).Error
	assert.ErrorIs(t, err, stmtmock.ErrNoExpectation)
}

func TestModelToRows(t *testing.T) {
	rows := ModelToRows([]*TestTab{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})
	require.NotNil(t, rows)
	assert.Equal(t, []string{"id", "name", "ctime", "mtime"}, rows.Columns())
	assert.Equal(t, 2, rows.Len())

	empty := ModelToRows([]TestTab{})
	assert.Equal(t, []string{"id", "name", "ctime", "mtime"}, empty.Columns())
	assert.Equal(t, 0, empty.Len())
}
