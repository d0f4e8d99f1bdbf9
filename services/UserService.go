package services

import (
	"log"
	"time"

	"techStore/models"
	"techStore/repository"
)

type UserService struct {
	ur repository.UserRepository
	sr repository.SessionRepository
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) UserService {
	return UserService{
		ur: userRepo,
		sr: sessionRepo,
	}
}

func (us *UserService) SignupRequest(creds models.Credentials) (uModel models.User_db, err error) {
	uModel.Username = creds.Username
	if creds.Role == "" {
		creds.Role = "user"
	}
	uModel.Role = creds.Role

	_, ex, err := us.ur.GetUserByName(uModel.Username)
	if err != nil {
		return
	}
	if ex {
		log.Printf("SignupRequest: user already exists")
		err = models.ErrNotAllowed
		return
	}
	uModel.Password, err = us.ur.EncryptPassword(creds.Password)
	if err != nil {
		return
	}
	uModel.Id, err = us.ur.AddNewUser(uModel)
	return
}

func (us *UserService) SigninRequest(name string, password string) (uModel models.User_db, sessionId string, err error) {
	uModel, ex, err := us.ur.GetUserByName(name)
	if err != nil {
		return
	}
	if !ex {
		log.Printf("SigninRequest: user not found")
		err = models.ErrNotAllowed
		return
	}
	if !us.ur.VerifyPassword(uModel.Password, password) {
		log.Printf("SigninRequest: wrong password")
		err = models.ErrUnauthorized
		return
	}
	sessionId, err = us.sr.CreateSession(uModel.Id, uModel.Role)
	return
}

func (us *UserService) RefreshRequest(sessionId string) (err error) {
	err = us.sr.RefreshSession(sessionId, 30*time.Minute)
	return
}

func (us *UserService) CreateUserRequest(creds models.Credentials) (err error) {
	_, err = us.SignupRequest(creds)
	return
}

func (us *UserService) CheckAccess(sessionId string) (access bool, err error) {
	_, role, exists, e := us.sr.GetUserSessionInfo(sessionId)
	if e != nil {
		err = e
		return
	}
	if !exists || role != "manager" {
		return
	}
	access = true
	return
}

func (us *UserService) CheckAuth(sessionId string) (bool, error) {
	authorized, err := us.sr.CheckSession(sessionId)
	return authorized, err
}

// ResolveIdentity maps the session cookie to the signed-in user, if any.
func (us *UserService) ResolveIdentity(sessionId string) (userId int, role string, authenticated bool, err error) {
	userId, role, authenticated, err = us.sr.GetUserSessionInfo(sessionId)
	return
}

func (us *UserService) DeleteSessionRequest(sessionId string) (err error) {
	err = us.sr.DeleteSession(sessionId)
	return
}

func (us *UserService) WelcomeRequest(sessionId string) (uModel models.User_db, ex bool) {
	userId, _, exist, err := us.sr.GetUserSessionInfo(sessionId)
	if err != nil || !exist {
		return
	}
	uModel, exist, err = us.ur.GetUserById(userId)
	if err != nil || !exist {
		return
	}
	ex = true
	return
}

func (us *UserService) GetProfile(userId int) (profile models.ProfileData, err error) {
	uModel, ex, err := us.ur.GetUserById(userId)
	if err != nil {
		return
	}
	if !ex {
		err = models.ErrNotFoundError
		return
	}
	profile = models.ProfileData{
		Email:     uModel.Email,
		FirstName: uModel.FirstName,
		LastName:  uModel.LastName,
		Phone:     uModel.Phone,
		Address:   uModel.Address,
	}
	return
}

func (us *UserService) UpdateProfile(userId int, profile models.ProfileData) (err error) {
	err = us.ur.UpdateProfile(userId, profile)
	return
}

func (us *UserService) ChangePasswordRequest(sessionId string, oldPass string, newPass string) (err error) {
	userId, _, _, e := us.sr.GetUserSessionInfo(sessionId)
	if e != nil {
		err = e
		return
	}

	uModel, _, err := us.ur.GetUserById(userId)
	if err != nil {
		return
	}
	if !us.ur.VerifyPassword(uModel.Password, oldPass) {
		err = models.ErrBadRequest
		return
	}
	newPass, err = us.ur.EncryptPassword(newPass)
	if err != nil {
		return
	}
	err = us.ur.UpdatePassword(userId, newPass)
	if err != nil {
		return
	}

	err = us.sr.DeleteSession(sessionId)
	return
}
