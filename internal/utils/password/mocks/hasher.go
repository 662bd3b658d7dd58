// Package mocks содержит мок password.Hasher
package mocks

import "github.com/stretchr/testify/mock"

// HasherMock мок password.Hasher
type HasherMock struct{ mock.Mock }

// NewHasherMock создает мок и проверяет ожидания по завершении теста
func NewHasherMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *HasherMock {
	m := &HasherMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *HasherMock) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *HasherMock) Check(hash, password string) error {
	return m.Called(hash, password).Error(0)
}
