package http

// Login godoc
// @Summary Log in
// @Description Authenticate and open a session; the token goes in the Authorization header as "Bearer <token>"
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Credentials"
// @Success 200 {object} object{success=bool,message=string,data=object{token=string,expires_at=string,session=object,destinations=array}}
// @Failure 401 {object} object{success=bool,error=string}
// @Failure 429 {object} object{success=bool,error=string}
// @Router /auth/login [post]
func (h *SessionHandler) LoginDoc() {}

// Logout godoc
// @Summary Log out
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Router /auth/logout [post]
func (h *SessionHandler) LogoutDoc() {}

// GetSession godoc
// @Summary Current session
// @Description Navigation state, current page and the destinations offered to the caller
// @Tags Session
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{state=string,session=object,destinations=array}}
// @Router /api/session [get]
func (h *SessionHandler) GetSessionDoc() {}

// Navigate godoc
// @Summary Change page
// @Tags Session
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{page=string} true "Destination"
// @Success 200 {object} object{success=bool,data=object{state=string,session=object,destinations=array}}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/session/page [put]
func (h *SessionHandler) NavigateDoc() {}
