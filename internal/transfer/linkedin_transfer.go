package transfer

// LinkedInToken is the token endpoint response.
type LinkedInToken struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// LinkedInUserInfo covers both the legacy /v2/me shape and the OpenID
// userinfo shape.
type LinkedInUserInfo struct {
	ID                 string `json:"id"`
	LocalizedFirstName string `json:"localizedFirstName"`
	LocalizedLastName  string `json:"localizedLastName"`
	Sub                string `json:"sub"`
	GivenName          string `json:"given_name"`
	FamilyName         string `json:"family_name"`
}

func (u *LinkedInUserInfo) PersonID() string {
	if u.ID != "" {
		return u.ID
	}
	return u.Sub
}

func (u *LinkedInUserInfo) FirstName() string {
	if u.LocalizedFirstName != "" {
		return u.LocalizedFirstName
	}
	return u.GivenName
}

func (u *LinkedInUserInfo) LastName() string {
	if u.LocalizedLastName != "" {
		return u.LocalizedLastName
	}
	return u.FamilyName
}

type UGCPost struct {
	Author          string             `json:"author"`
	LifecycleState  string             `json:"lifecycleState"`
	SpecificContent UGCSpecificContent `json:"specificContent"`
	Visibility      UGCVisibility      `json:"visibility"`
}

type UGCSpecificContent struct {
	ShareContent UGCShareContent `json:"com.linkedin.ugc.ShareContent"`
}

type UGCShareContent struct {
	ShareCommentary    UGCText `json:"shareCommentary"`
	ShareMediaCategory string  `json:"shareMediaCategory"`
}

type UGCText struct {
	Text string `json:"text"`
}

type UGCVisibility struct {
	MemberNetworkVisibility string `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}

// NewUGCPost builds a public text-only share.
func NewUGCPost(author, text string) *UGCPost {
	return &UGCPost{
		Author:         author,
		LifecycleState: "PUBLISHED",
		SpecificContent: UGCSpecificContent{
			ShareContent: UGCShareContent{
				ShareCommentary:    UGCText{Text: text},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: UGCVisibility{MemberNetworkVisibility: "PUBLIC"},
	}
}

type UGCPostResponse struct {
	ID string `json:"id"`
}
