package http

// Register godoc
// @Summary Register a new user
// @Description Create an account with the "user" role
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string,confirm_password=string,full_name=string} true "Registration data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,fields=object}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /auth/register [post]
func (h *UserHandler) RegisterDoc() {}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{username=string,full_name=string,role=string}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /auth/me [get]
func (h *UserHandler) MeDoc() {}
