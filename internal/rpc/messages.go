package rpc

import "github.com/dmitrijs2005/gliphic/internal/directory"

type Empty struct{}

type RegisterUserRequest struct {
	Username string `json:"username"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
	// DefaultGroupKey is the default group's key encrypted under the user's
	// data encryption key.
	DefaultGroupKey   []byte `json:"defaultGroupKey"`
	DefaultGroupKeyIV []byte `json:"defaultGroupKeyIv"`
}

type RegisterUserResponse struct {
	UserID string `json:"userId"`
}

type GetSaltRequest struct {
	Username string `json:"username"`
}

type GetSaltResponse struct {
	Salt []byte `json:"salt"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Verifier []byte `json:"verifier"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type PingResponse struct {
	Status string `json:"status"`
}

type ListContactsResponse struct {
	Contacts []directory.ContactRecord `json:"contacts"`
}

type AddContactRequest struct {
	ContactID string `json:"contactId"`
}

type AddContactResponse struct {
	Contact directory.ContactRecord `json:"contact"`
}

type ListGroupsResponse struct {
	Groups []directory.GroupRecord `json:"groups"`
}

type CreateGroupRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	ImageBase64       string `json:"image,omitempty"`
	Open              bool   `json:"open"`
	EncryptedGroupKey []byte `json:"encryptedGroupKey"`
	GroupKeyIV        []byte `json:"groupKeyIv"`
}

type GroupResponse struct {
	Group directory.GroupRecord `json:"group"`
}

type GroupNumberRequest struct {
	GroupNumber int64 `json:"groupNumber"`
}

type GroupKeyResponse struct {
	EncryptedGroupKey []byte `json:"encryptedGroupKey"`
	GroupKeyIV        []byte `json:"groupKeyIv"`
}

type ShareGroupRequest struct {
	GroupNumber   int64  `json:"groupNumber"`
	ContactNumber int64  `json:"contactNumber"`
	SealedKey     []byte `json:"sealedKey"`
	SealNonce     []byte `json:"sealNonce"`
}

type ShareGroupResponse struct {
	ShareID string `json:"shareId"`
}

// Share is a pending group key hand-over addressed to the caller.
type Share struct {
	ID                string `json:"id"`
	GroupIDBase64     string `json:"groupId"`
	GroupName         string `json:"groupName"`
	FromContactNumber int64  `json:"fromContactNumber"`
	FromName          string `json:"fromName"`
	SealedKey         []byte `json:"sealedKey"`
	SealNonce         []byte `json:"sealNonce"`
}

type ListSharesResponse struct {
	Shares []Share `json:"shares"`
}

type AcceptShareRequest struct {
	ShareID           string `json:"shareId"`
	EncryptedGroupKey []byte `json:"encryptedGroupKey"`
	GroupKeyIV        []byte `json:"groupKeyIv"`
}

type SetMemberPermissionsRequest struct {
	GroupNumber   int64 `json:"groupNumber"`
	ContactNumber int64 `json:"contactNumber"`
	Permissions   int   `json:"permissions"`
}

type WrapMessageRequest struct {
	GroupNumber   int64  `json:"groupNumber"`
	IV            []byte `json:"iv"`
	RawCipherText []byte `json:"rawCipherText"`
	TimeOut       int64  `json:"timeOut"`
}

type WrapMessageResponse struct {
	Blob []byte `json:"blob"`
}

type RevealItem struct {
	GroupNumber int64  `json:"groupNumber"`
	IV          []byte `json:"iv"`
	Blob        []byte `json:"blob"`
}

type RevealMessagesRequest struct {
	Items []RevealItem `json:"items"`
}

// RevealResult answers one RevealItem. Only a success status carries the
// cipher text and key material.
type RevealResult struct {
	Status            int    `json:"status"`
	RawCipherText     []byte `json:"rawCipherText,omitempty"`
	EncryptedGroupKey []byte `json:"encryptedGroupKey,omitempty"`
	GroupKeyIV        []byte `json:"groupKeyIv,omitempty"`
	TimeOut           int64  `json:"timeOut"`
}

type RevealMessagesResponse struct {
	Results []RevealResult `json:"results"`
}

type ImageUploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type SetGroupImageRequest struct {
	GroupNumber int64  `json:"groupNumber"`
	ImageKey    string `json:"imageKey"`
}

type ImageDownloadURLRequest struct {
	Key string `json:"key"`
}

type ImageDownloadURLResponse struct {
	URL string `json:"url"`
}
