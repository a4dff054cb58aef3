package mapping

import "github.com/me/freesound/pkg/model"

// UploadedSoundDetailsMapper maps the upload and describe responses.
type UploadedSoundDetailsMapper struct{}

// Map implements Mapper.
func (UploadedSoundDetailsMapper) Map(source Object) model.UploadedSoundDetails {
	return model.UploadedSoundDetails{
		Detail:   String(source, "detail"),
		ID:       Ptr[int](source, "id"),
		Filename: String(source, "filename"),
	}
}

// PendingUploadsMapper maps the pending uploads listing.
type PendingUploadsMapper struct{}

// Map implements Mapper.
func (PendingUploadsMapper) Map(source Object) model.PendingUploads {
	description, _ := Field[Array](source, "pending_description")
	processing, _ := Field[Array](source, "pending_processing")
	moderation, _ := Field[Array](source, "pending_moderation")

	return model.PendingUploads{
		PendingDescription: Strings(description),
		PendingProcessing:  Items[model.Sound](processing, SoundMapper{}),
		PendingModeration:  Items[model.Sound](moderation, SoundMapper{}),
	}
}

// AudioDescriptorsMapper maps the available audio descriptors listing.
type AudioDescriptorsMapper struct{}

// Map implements Mapper.
func (AudioDescriptorsMapper) Map(source Object) model.AudioDescriptors {
	fixed, _ := Field[Object](source, "fixed-length")
	oneDim, _ := Field[Array](fixed, "one-dimensional")
	multiDim, _ := Field[Array](fixed, "multi-dimensional")
	variable, _ := Field[Array](source, "variable-length")

	return model.AudioDescriptors{
		FixedLengthOneDimensional:   sortedSet(Strings(oneDim)),
		FixedLengthMultiDimensional: sortedSet(Strings(multiDim)),
		VariableLength:              sortedSet(Strings(variable)),
	}
}

// AccessTokenDetailsMapper maps the OAuth2 access token response.
type AccessTokenDetailsMapper struct{}

// Map implements Mapper.
func (AccessTokenDetailsMapper) Map(source Object) model.AccessTokenDetails {
	return model.AccessTokenDetails{
		AccessToken:  String(source, "access_token"),
		Scope:        String(source, "scope"),
		ExpiresIn:    Ptr[int](source, "expires_in"),
		RefreshToken: String(source, "refresh_token"),
	}
}
