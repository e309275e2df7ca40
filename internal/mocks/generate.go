// Package mocks provides gomock implementations of the portal's ports.
//
// To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	dir := mocks.NewMockUserDirectory(ctrl)
//	dir.EXPECT().FetchAllUsers(gomock.Any()).Return(users, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_directory_mock.go github.com/Digmusic88/mundo-world-school/internal/ports UserDirectory
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_slot_mock.go github.com/Digmusic88/mundo-world-school/internal/ports SessionSlot
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=school_data_mock.go github.com/Digmusic88/mundo-world-school/internal/ports SchoolData
